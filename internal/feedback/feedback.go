// Package feedback receives free-text feedback from the form.
package feedback

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Recorder accepts submitted feedback. Submission cannot fail.
type Recorder interface {
	Record(ctx context.Context, text string)
}

// Entry is one piece of accepted feedback.
type Entry struct {
	Text string
	At   time.Time
}

// LogRecorder writes feedback to the structured log and keeps it in memory
// for the lifetime of the session. Nothing is persisted.
type LogRecorder struct {
	logger *slog.Logger

	mu      sync.Mutex
	entries []Entry
}

// NewLogRecorder returns a recorder logging to logger, or to the default
// logger when logger is nil.
func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogRecorder{logger: logger}
}

// Record logs text and appends it to the session history.
func (r *LogRecorder) Record(ctx context.Context, text string) {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Text: text, At: time.Now()})
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Feedback submitted", "feedback", text, "length", len(text))
}

// Entries returns the feedback accepted so far.
func (r *LogRecorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
