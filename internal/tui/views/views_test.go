package views

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/savour/internal/form"
	"github.com/f3rmion/savour/internal/preview"
)

func TestFilePickerListsPhotos(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.JPG", "a.png", "notes.txt", ".hidden.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "meals"), 0755); err != nil {
		t.Fatal(err)
	}

	m := NewFilePickerModel(dir)

	var names []string
	for _, e := range m.Entries() {
		names = append(names, e.Name)
	}
	want := "..,meals,a.png,b.JPG"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("entries = %s, want %s", got, want)
	}
}

func TestFilePickerSelectsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "soup.jpg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewFilePickerModel(dir)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a selection command")
	}
	msg, ok := cmd().(FileSelectedMsg)
	if !ok || msg.Path != path {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestFilePickerMatchesConfiguredExtensions(t *testing.T) {
	m := FilePickerModel{extensions: []string{".png"}}

	if !m.matchesExtension("plate.PNG") {
		t.Error("expected .PNG to match .png")
	}
	if m.matchesExtension("plate.jpg") {
		t.Error("expected .jpg to be filtered out")
	}
}

func TestRenderLanguagesMarksSelection(t *testing.T) {
	out := RenderLanguages("fr", 0)
	if !strings.Contains(out, "● French") {
		t.Errorf("expected French selected:\n%s", out)
	}
	if !strings.Contains(out, "○ English") {
		t.Errorf("expected English unselected:\n%s", out)
	}

	if wrapped := RenderLanguages("fr", 30); !strings.Contains(wrapped, "\n") {
		t.Error("expected narrow width to wrap")
	}
}

func TestAnalyzeKeys(t *testing.T) {
	m := NewAnalyzeModel()
	st := form.New()

	_, a, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight}, st)
	if sel, ok := a.(form.SelectLanguage); !ok || sel.Code != "es" {
		t.Errorf("expected SelectLanguage es, got %#v", a)
	}

	_, a, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft}, st)
	if sel, ok := a.(form.SelectLanguage); !ok || sel.Code != "zh" {
		t.Errorf("expected SelectLanguage zh, got %#v", a)
	}

	if _, a, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}, st); a != nil {
		t.Errorf("expected no submit without a photo, got %#v", a)
	}

	st, _ = form.Reduce(st, form.PickImage{File: preview.File{Name: "a.png", ContentType: "image/png"}})
	if _, a, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}, st); a == nil {
		t.Error("expected submit with a photo")
	}
}

func TestAnalyzeViewStates(t *testing.T) {
	m := NewAnalyzeModel()
	m.SetSize(100, 50)
	st := form.New()

	if out := m.View(st); !strings.Contains(out, "press o to choose a photo") {
		t.Errorf("expected placeholder caption:\n%s", out)
	}

	st, _ = form.Reduce(st, form.PickImage{File: preview.File{Name: "a.png", ContentType: "image/png", Size: 2048}})
	st, _ = form.Reduce(st, form.SubmitAnalysis{})
	if out := m.View(st); !strings.Contains(out, "Analyzing...") || !strings.Contains(out, "a.png (2.0 kB)") {
		t.Errorf("expected loading view:\n%s", out)
	}
}

func TestResultShowsTextVerbatim(t *testing.T) {
	m := NewResultModel()
	m.SetSize(80, 20)

	if m.View() != "" {
		t.Error("expected nothing without text")
	}

	text := "Rice: 200 kcal\nBeans: 120 kcal"
	m.SetText(text)
	if m.Text() != text {
		t.Errorf("Text() = %q", m.Text())
	}
	out := m.View()
	if !strings.Contains(out, "Calorie Analysis Results") || !strings.Contains(out, "Beans: 120 kcal") {
		t.Errorf("unexpected result view:\n%s", out)
	}
}

func TestFeedbackEdits(t *testing.T) {
	m := NewFeedbackModel()
	m.Focus()
	st := form.New()

	m, a, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")}, st)
	edit, ok := a.(form.EditFeedback)
	if !ok || edit.Text != "hi" {
		t.Fatalf("expected EditFeedback hi, got %#v", a)
	}

	st, _ = form.Reduce(st, edit)
	_, a, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}, st)
	if _, ok := a.(form.SubmitFeedback); !ok {
		t.Fatalf("expected SubmitFeedback, got %#v", a)
	}

	st, _ = form.Reduce(st, form.SubmitFeedback{})
	m.Sync(st)
	if out := m.View(st); !strings.Contains(out, form.AckText) {
		t.Errorf("expected acknowledgement:\n%s", out)
	}
}

func TestFeedbackAcceptsManyLines(t *testing.T) {
	m := NewFeedbackModel()
	m.Focus()
	st := form.New()

	const lines = 150
	for i := 0; i < lines; i++ {
		m, _, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, st)
		m, _, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}, st)
	}
	_, a, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("end")}, st)

	edit, ok := a.(form.EditFeedback)
	if !ok {
		t.Fatalf("expected EditFeedback, got %#v", a)
	}
	if got := strings.Count(edit.Text, "\n"); got != lines {
		t.Errorf("draft has %d line breaks, want %d", got, lines)
	}
	if !strings.HasSuffix(edit.Text, "x\nend") {
		t.Errorf("unexpected draft tail %q", edit.Text[max(0, len(edit.Text)-10):])
	}
}
