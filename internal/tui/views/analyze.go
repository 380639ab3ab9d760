// Package views provides the individual views for the unified TUI.
package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/f3rmion/savour/internal/clipboard"
	"github.com/f3rmion/savour/internal/form"
	"github.com/f3rmion/savour/internal/language"
)

// Thumbnail size in terminal cells.
const (
	thumbCols = 48
	thumbRows = 12
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#16a34a")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	dropZoneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(0, 2).
			Align(lipgloss.Center)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	fileNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#16a34a")).
			Padding(0, 3)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 3)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	copiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)
)

const cameraIcon = `  ▄▄▄▄
▐█▀▀▀▀█▌
▐▌ ◯◯ ▐▌
▝▀▀▀▀▀▀▘`

// OpenPickerMsg asks the app to show the photo picker.
type OpenPickerMsg struct{}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// AnalyzeModel is the analysis form: language, photo, submit control and
// result. Form state is owned by the caller and passed in; this model only
// keeps widget state.
type AnalyzeModel struct {
	spinner spinner.Model
	result  ResultModel

	copied  bool
	copyErr error

	width  int
	height int
}

// NewAnalyzeModel creates the analysis form view.
func NewAnalyzeModel() AnalyzeModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))

	return AnalyzeModel{
		spinner: sp,
		result:  NewResultModel(),
	}
}

// SetSize updates the view dimensions.
func (m *AnalyzeModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Rows used by header, language row, photo box, button and help.
	used := 14 + thumbRows
	m.result.SetSize(width-4, height-used)
}

// ThumbnailSize returns the preview size in terminal cells.
func (m AnalyzeModel) ThumbnailSize() (cols, rows int) {
	cols = thumbCols
	if m.width > 0 && m.width-8 < cols {
		cols = max(8, m.width-8)
	}
	return cols, thumbRows
}

// SpinnerTick starts the busy indicator.
func (m AnalyzeModel) SpinnerTick() tea.Cmd {
	return m.spinner.Tick
}

// Sync brings widget state in line with st.
func (m *AnalyzeModel) Sync(st form.State) {
	text, _ := st.Result()
	m.result.SetText(text)
}

// Update maps input to form actions.
func (m AnalyzeModel) Update(msg tea.Msg, st form.State) (AnalyzeModel, form.Action, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			return m, form.SelectLanguage{Code: language.Prev(st.Language)}, nil
		case "right", "l":
			return m, form.SelectLanguage{Code: language.Next(st.Language)}, nil
		case "enter", "a":
			if !st.CanSubmit() {
				return m, nil, nil
			}
			m.copied = false
			return m, form.SubmitAnalysis{}, nil
		case "o", "p":
			return m, nil, func() tea.Msg { return OpenPickerMsg{} }
		case "y":
			text, ok := st.Result()
			if !ok {
				return m, nil, nil
			}
			if err := clipboard.Write(text); err != nil {
				m.copyErr = err
				return m, nil, nil
			}
			m.copyErr = nil
			m.copied = true
			return m, nil, clearCopiedAfter(2 * time.Second)
		case "up", "down", "j", "k", "pgup", "pgdown":
			var cmd tea.Cmd
			m.result, cmd = m.result.Update(msg)
			return m, nil, cmd
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.result, cmd = m.result.Update(msg)
		return m, nil, cmd

	case spinner.TickMsg:
		if !st.Loading() {
			return m, nil, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, nil, cmd

	case clearCopiedMsg:
		m.copied = false
		return m, nil, nil
	}

	return m, nil, nil
}

// View renders the form for st.
func (m AnalyzeModel) View(st form.State) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("SavourSAGE"))
	b.WriteString(" ")
	b.WriteString(taglineStyle.Render("intelligent nutrition analysis"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Select Language"))
	b.WriteString("\n")
	b.WriteString(RenderLanguages(st.Language, m.width))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Upload Food Image"))
	b.WriteString("\n")
	b.WriteString(m.renderPhoto(st))
	b.WriteString("\n\n")

	b.WriteString(m.renderButton(st))
	b.WriteString("\n")

	if result := m.result.View(); result != "" {
		b.WriteString("\n")
		b.WriteString(result)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp(st))

	return b.String()
}

func (m AnalyzeModel) renderPhoto(st form.State) string {
	var inner string
	switch {
	case st.Preview != nil && st.Preview.Thumbnail != "":
		inner = st.Preview.Thumbnail
	default:
		inner = placeholderStyle.Render(cameraIcon)
	}

	var caption string
	if st.Image != nil {
		caption = fileNameStyle.Render(fmt.Sprintf("%s (%s)", st.Image.Name, humanize.Bytes(uint64(st.Image.Size))))
		if st.Preview == nil {
			caption += placeholderStyle.Render(" • loading preview…")
		} else if st.Preview.Thumbnail == "" {
			caption += placeholderStyle.Render(" • preview unavailable")
		}
	} else {
		caption = placeholderStyle.Render("press o to choose a photo • PNG, JPG, GIF up to 10MB")
	}

	return dropZoneStyle.Render(inner + "\n" + caption)
}

func (m AnalyzeModel) renderButton(st form.State) string {
	switch {
	case st.Loading():
		return buttonDisabledStyle.Render(m.spinner.View() + " Analyzing...")
	case st.CanSubmit():
		return buttonStyle.Render("➤ Analyze Food")
	default:
		return buttonDisabledStyle.Render("➤ Analyze Food")
	}
}

func (m AnalyzeModel) renderHelp(st form.State) string {
	var parts []string
	parts = append(parts, "←/→: language", "o: choose photo")
	if st.CanSubmit() {
		parts = append(parts, "enter: analyze")
	}
	if _, ok := st.Result(); ok {
		parts = append(parts, "y: copy")
	}

	help := helpStyle.Render(strings.Join(parts, " • "))
	switch {
	case m.copied:
		help += "  " + copiedStyle.Render("Copied!")
	case m.copyErr != nil:
		help += "  " + errorStyle.Render(m.copyErr.Error())
	}
	return help
}
