package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/savour/internal/analysis"
	"github.com/f3rmion/savour/internal/feedback"
	"github.com/f3rmion/savour/internal/form"
	"github.com/f3rmion/savour/internal/preview"
)

var errNoAnalyzer = errors.New("no analysis endpoint configured")

// dispatch applies a to the form and turns the resulting effects into
// commands. A nil action is a no-op.
func (m *AppModel) dispatch(a form.Action) tea.Cmd {
	if a == nil {
		return nil
	}

	var effects []form.Effect
	m.state, effects = form.Reduce(m.state, a)
	m.analyzeView.Sync(m.state)
	m.feedbackView.Sync(m.state)

	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case form.DecodePreview:
			cols, rows := m.analyzeView.ThumbnailSize()
			cmds = append(cmds, decodePreview(e, cols, rows))
		case form.SendAnalysis:
			cmds = append(cmds, sendAnalysis(m.ctx, m.analyzer, e), m.analyzeView.SpinnerTick())
		case form.RecordFeedback:
			cmds = append(cmds, recordFeedback(m.ctx, m.recorder, e.Text))
		case form.ScheduleAckExpiry:
			cmds = append(cmds, expireAck(e))
		case form.ReportFault:
			m.logger.Error("Operation failed", "op", e.Op, "err", e.Err)
		}
	}
	return tea.Batch(cmds...)
}

func decodePreview(e form.DecodePreview, cols, rows int) tea.Cmd {
	return func() tea.Msg {
		img, err := preview.Decode(e.File, cols, rows)
		return form.PreviewDecoded{Gen: e.Gen, Image: img, Err: err}
	}
}

func sendAnalysis(ctx context.Context, analyzer Analyzer, e form.SendAnalysis) tea.Cmd {
	return func() tea.Msg {
		if analyzer == nil {
			return form.AnalysisSettled{Gen: e.Gen, Err: errNoAnalyzer}
		}
		text, err := analyzer.Analyze(ctx, analysis.Request{Image: e.File, Language: e.Language})
		return form.AnalysisSettled{Gen: e.Gen, Text: text, Err: err}
	}
}

func recordFeedback(ctx context.Context, r feedback.Recorder, text string) tea.Cmd {
	return func() tea.Msg {
		r.Record(ctx, text)
		return nil
	}
}

func expireAck(e form.ScheduleAckExpiry) tea.Cmd {
	return tea.Tick(e.After, func(time.Time) tea.Msg {
		return form.AckExpired{Gen: e.Gen}
	})
}
