package form

import (
	"time"

	"github.com/f3rmion/savour/internal/preview"
)

// Action is an input to the state machine.
type Action interface {
	action()
}

// PickImage replaces the chosen photo.
type PickImage struct {
	File preview.File
}

// PreviewDecoded reports the settlement of a preview decode.
type PreviewDecoded struct {
	Gen   uint64
	Image preview.Image
	Err   error
}

// SelectLanguage changes the analysis language.
type SelectLanguage struct {
	Code string
}

// SubmitAnalysis asks for the chosen photo to be analyzed.
type SubmitAnalysis struct{}

// AnalysisSettled reports the settlement of an analysis request.
type AnalysisSettled struct {
	Gen  uint64
	Text string
	Err  error
}

// EditFeedback replaces the feedback draft.
type EditFeedback struct {
	Text string
}

// SubmitFeedback sends the current draft.
type SubmitFeedback struct{}

// AckExpired reports that an acknowledgement timer fired.
type AckExpired struct {
	Gen uint64
}

// Teardown invalidates every outstanding settlement.
type Teardown struct{}

func (PickImage) action()       {}
func (PreviewDecoded) action()  {}
func (SelectLanguage) action()  {}
func (SubmitAnalysis) action()  {}
func (AnalysisSettled) action() {}
func (EditFeedback) action()    {}
func (SubmitFeedback) action()  {}
func (AckExpired) action()      {}
func (Teardown) action()        {}

// Effect is work the runtime must perform after a transition.
type Effect interface {
	effect()
}

// DecodePreview renders the preview for File and reports PreviewDecoded{Gen}.
type DecodePreview struct {
	Gen  uint64
	File preview.File
}

// SendAnalysis issues one analysis request and reports AnalysisSettled{Gen}.
type SendAnalysis struct {
	Gen      uint64
	File     preview.File
	Language string
}

// RecordFeedback hands accepted feedback to the feedback sink.
type RecordFeedback struct {
	Text string
}

// ScheduleAckExpiry fires AckExpired{Gen} once After has elapsed.
type ScheduleAckExpiry struct {
	Gen   uint64
	After time.Duration
}

// ReportFault logs a recovered fault. It is never shown to the user.
type ReportFault struct {
	Op  string
	Err error
}

func (DecodePreview) effect()     {}
func (SendAnalysis) effect()      {}
func (RecordFeedback) effect()    {}
func (ScheduleAckExpiry) effect() {}
func (ReportFault) effect()       {}
