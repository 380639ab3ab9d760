package tui

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/savour/internal/analysis"
	"github.com/f3rmion/savour/internal/feedback"
	"github.com/f3rmion/savour/internal/form"
	"github.com/f3rmion/savour/internal/tui/views"
)

type fakeAnalyzer struct {
	mu   sync.Mutex
	reqs []analysis.Request
	text string
	err  error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req analysis.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.text, f.err
}

func (f *fakeAnalyzer) calls() []analysis.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]analysis.Request(nil), f.reqs...)
}

// collect runs cmd and returns the messages it produces. Commands that take
// longer than a short wait (timers, cursor blinks) are skipped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(300 * time.Millisecond):
		return nil
	}
}

// send feeds msg to m and returns the updated model and command.
func send(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

// settle runs cmd and feeds back every form action it produced.
func settle(m AppModel, cmd tea.Cmd) AppModel {
	for _, msg := range collect(cmd) {
		if a, ok := msg.(form.Action); ok {
			m, _ = send(m, a)
		}
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func writePNG(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "salad.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestApp(t *testing.T, a *fakeAnalyzer) (AppModel, *feedback.LogRecorder) {
	t.Helper()

	rec := feedback.NewLogRecorder(nil)
	m := NewApp(Options{Analyzer: a, Recorder: rec})
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 50})
	return m, rec
}

func pickPhoto(t *testing.T, m AppModel) AppModel {
	t.Helper()

	m, cmd := send(m, views.FileSelectedMsg{Path: writePNG(t)})
	if m.CurrentView() != ViewAnalyze {
		t.Fatalf("expected analyze view after picking, got %d", m.CurrentView())
	}
	return settle(m, cmd)
}

func TestAnalyzePhoto(t *testing.T) {
	fake := &fakeAnalyzer{text: "Salad: ~150 kcal\nDressing: ~90 kcal"}
	m, _ := newTestApp(t, fake)

	m = pickPhoto(t, m)
	st := m.State()
	if st.Image == nil || st.Image.Name != "salad.png" {
		t.Fatalf("unexpected image %+v", st.Image)
	}
	if st.Preview == nil || st.Preview.Thumbnail == "" {
		t.Fatal("expected a decoded thumbnail")
	}

	m, _ = send(m, key("right"))
	if got := m.State().Language; got != "es" {
		t.Fatalf("expected es after right, got %s", got)
	}

	m, cmd := send(m, key("enter"))
	if !m.State().Loading() {
		t.Fatal("expected loading after submit")
	}
	if !strings.Contains(m.View(), "Analyzing...") {
		t.Error("expected busy button while loading")
	}

	m = settle(m, cmd)

	reqs := fake.calls()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].Language != "es" || reqs[0].Image.Name != "salad.png" {
		t.Errorf("unexpected request %+v", reqs[0])
	}

	st = m.State()
	if st.Submission.Phase != form.Succeeded || st.Submission.Text != fake.text {
		t.Errorf("unexpected submission %+v", st.Submission)
	}
	if !strings.Contains(m.View(), "Calorie Analysis Results") {
		t.Error("expected result heading in view")
	}
}

func TestSubmitWithoutPhotoDoesNothing(t *testing.T) {
	fake := &fakeAnalyzer{text: "ok"}
	m, _ := newTestApp(t, fake)

	m, cmd := send(m, key("enter"))
	if cmd != nil {
		t.Error("expected no command without a photo")
	}
	if m.State().Loading() {
		t.Error("expected idle without a photo")
	}
}

func TestSecondSubmitWhileLoadingSendsNothing(t *testing.T) {
	fake := &fakeAnalyzer{text: "ok"}
	m, _ := newTestApp(t, fake)
	m = pickPhoto(t, m)

	m, first := send(m, key("enter"))
	m, second := send(m, key("enter"))
	if second != nil {
		t.Error("expected no command for the second submit")
	}

	m = settle(m, first)
	if n := len(fake.calls()); n != 1 {
		t.Errorf("expected exactly 1 request, got %d", n)
	}
	if m.State().Submission.Phase != form.Succeeded {
		t.Errorf("expected succeeded, got %s", m.State().Submission.Phase)
	}
}

func TestFailedAnalysisShowsFallback(t *testing.T) {
	fake := &fakeAnalyzer{err: errors.New("connection refused")}
	m, _ := newTestApp(t, fake)
	m = pickPhoto(t, m)

	m, cmd := send(m, key("enter"))
	m = settle(m, cmd)

	st := m.State()
	if st.Submission.Phase != form.Failed || st.Submission.Text != form.FallbackText {
		t.Errorf("unexpected submission %+v", st.Submission)
	}
	if strings.Contains(m.View(), "connection refused") {
		t.Error("error detail must not be shown")
	}
}

func TestQuitDropsInflightResult(t *testing.T) {
	fake := &fakeAnalyzer{text: "late"}
	m, _ := newTestApp(t, fake)
	m = pickPhoto(t, m)

	m, submit := send(m, key("enter"))
	msgs := collect(submit)

	m, _ = send(m, key("ctrl+c"))
	if m.State().Loading() {
		t.Error("expected teardown to leave loading")
	}
	if err := m.ctx.Err(); err != nil {
		t.Errorf("quit must not cancel running effects: %v", err)
	}

	for _, msg := range msgs {
		if a, ok := msg.(form.AnalysisSettled); ok {
			m, _ = send(m, a)
		}
	}
	if _, ok := m.State().Result(); ok {
		t.Error("expected settlement after teardown to be dropped")
	}
}

func TestFeedbackFlow(t *testing.T) {
	m, rec := newTestApp(t, &fakeAnalyzer{})

	m, _ = send(m, key("3"))
	if m.CurrentView() != ViewFeedback {
		t.Fatalf("expected feedback view, got %d", m.CurrentView())
	}

	m, _ = send(m, key("enter"))
	m, _ = send(m, key("Great app"))
	// Global shortcuts are plain text while typing.
	m, _ = send(m, key("q"))
	if got := m.State().Feedback.Draft; got != "Great appq" {
		t.Fatalf("unexpected draft %q", got)
	}

	m, cmd := send(m, key("ctrl+s"))
	st := m.State()
	if !st.Feedback.Acknowledged || st.Feedback.Draft != "" {
		t.Errorf("unexpected feedback state %+v", st.Feedback)
	}
	if !strings.Contains(m.View(), form.AckText) {
		t.Error("expected acknowledgement in view")
	}

	collect(cmd)
	entries := rec.Entries()
	if len(entries) != 1 || entries[0].Text != "Great appq" {
		t.Errorf("unexpected recorded feedback %+v", entries)
	}
}

func TestOpenPickerFromAnalyze(t *testing.T) {
	m, _ := newTestApp(t, &fakeAnalyzer{})

	m, cmd := send(m, key("o"))
	for _, msg := range collect(cmd) {
		m, _ = send(m, msg)
	}
	if m.CurrentView() != ViewFilePicker {
		t.Fatalf("expected picker view, got %d", m.CurrentView())
	}

	m, _ = send(m, key("esc"))
	if m.CurrentView() != ViewAnalyze {
		t.Errorf("expected esc to return to analyze, got %d", m.CurrentView())
	}
}

func TestOpenMissingPhotoKeepsState(t *testing.T) {
	m, _ := newTestApp(t, &fakeAnalyzer{})

	m, cmd := send(m, views.FileSelectedMsg{Path: filepath.Join(t.TempDir(), "missing.png")})
	if cmd != nil {
		t.Error("expected no command for a missing photo")
	}
	if m.State().Image != nil {
		t.Error("expected no image")
	}
}
