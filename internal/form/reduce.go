package form

import "github.com/f3rmion/savour/internal/language"

// Reduce applies a to s. It never blocks and never performs I/O; the returned
// effects describe the I/O to run.
func Reduce(s State, a Action) (State, []Effect) {
	switch a := a.(type) {
	case PickImage:
		file := a.File
		s.Image = &file
		s.Preview = nil
		s.previewGen++
		return s, []Effect{DecodePreview{Gen: s.previewGen, File: file}}

	case PreviewDecoded:
		if a.Gen != s.previewGen {
			return s, nil
		}
		if a.Err != nil {
			return s, []Effect{ReportFault{Op: "decode preview", Err: a.Err}}
		}
		img := a.Image
		s.Preview = &img
		return s, nil

	case SelectLanguage:
		if _, ok := language.Lookup(a.Code); !ok {
			return s, nil
		}
		s.Language = a.Code
		return s, nil

	case SubmitAnalysis:
		if !s.CanSubmit() {
			return s, nil
		}
		s.submitGen++
		s.Submission.Phase = Loading
		return s, []Effect{SendAnalysis{
			Gen:      s.submitGen,
			File:     *s.Image,
			Language: s.Language,
		}}

	case AnalysisSettled:
		if a.Gen != s.submitGen || s.Submission.Phase != Loading {
			return s, nil
		}
		if a.Err != nil {
			s.Submission = Submission{Phase: Failed, Text: FallbackText}
			return s, []Effect{ReportFault{Op: "analyze image", Err: a.Err}}
		}
		s.Submission = Submission{Phase: Succeeded, Text: a.Text}
		return s, nil

	case EditFeedback:
		s.Feedback.Draft = a.Text
		return s, nil

	case SubmitFeedback:
		text := s.Feedback.Draft
		s.Feedback.Draft = ""
		s.Feedback.Acknowledged = true
		s.ackGen++
		return s, []Effect{
			RecordFeedback{Text: text},
			ScheduleAckExpiry{Gen: s.ackGen, After: AckDuration},
		}

	case AckExpired:
		if a.Gen != s.ackGen {
			return s, nil
		}
		s.Feedback.Acknowledged = false
		return s, nil

	case Teardown:
		s.previewGen++
		s.submitGen++
		s.ackGen++
		if s.Submission.Phase == Loading {
			s.Submission.Phase = Idle
		}
		return s, nil
	}

	return s, nil
}
