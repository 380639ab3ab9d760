// Package form implements the analysis form as a pure state machine.
//
// All user input and every settled asynchronous operation is expressed as an
// Action. Reduce applies an Action to a State and returns the new State plus
// the Effects the runtime must perform (decode a preview, send a request,
// start a timer). Effects that settle later report back with the generation
// they were issued under; settlements from a superseded generation are
// dropped, so the most recent action always wins.
package form

import (
	"time"

	"github.com/f3rmion/savour/internal/language"
	"github.com/f3rmion/savour/internal/preview"
)

const (
	// FallbackText replaces the analysis when the request fails.
	FallbackText = "Sorry, there was an error analyzing the image."

	// AckText is shown after feedback has been submitted.
	AckText = "Thank you for your feedback! We appreciate your input."

	// AckDuration is how long the feedback acknowledgement stays visible.
	AckDuration = 3 * time.Second
)

// Phase is the lifecycle stage of the analysis submission.
type Phase int

const (
	Idle Phase = iota
	Loading
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Submission is the analysis request state. Text holds the result of the last
// settled request and survives a new submission until that one settles.
type Submission struct {
	Phase Phase
	Text  string
}

// Feedback is the independent feedback box.
type Feedback struct {
	Draft        string
	Acknowledged bool
}

// State is the whole form.
type State struct {
	Image      *preview.File  // nil until a photo is picked
	Preview    *preview.Image // nil until the current photo's preview settles
	Language   string
	Submission Submission
	Feedback   Feedback

	previewGen uint64
	submitGen  uint64
	ackGen     uint64
}

// New returns the initial form state.
func New() State {
	return State{Language: language.Default().Code}
}

// CanSubmit reports whether the analyze control is enabled.
func (s State) CanSubmit() bool {
	return s.Image != nil && s.Submission.Phase != Loading
}

// Loading reports whether a request is in flight.
func (s State) Loading() bool {
	return s.Submission.Phase == Loading
}

// Result returns the text to render, if any. The last settled text stays
// visible while a new request is loading.
func (s State) Result() (string, bool) {
	return s.Submission.Text, s.Submission.Text != ""
}
