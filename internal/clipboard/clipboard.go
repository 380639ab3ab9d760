// Package clipboard copies analysis results to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard backend is installed.
var ErrUnavailable = errors.New("clipboard unavailable (install xclip, xsel or wl-clipboard)")

// Write copies text to the system clipboard as-is, whitespace included, so
// the pasted report matches what was rendered.
func Write(text string) error {
	if !Available() {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Available checks if clipboard functionality is available.
func Available() bool {
	return !clipboard.Unsupported
}
