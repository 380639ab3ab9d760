package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	resultTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#16a34a"))

	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ade80")).
			Padding(0, 1)

	resultScrollStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))
)

// ResultModel renders the analysis text. The text is shown exactly as
// received; long lines are soft-wrapped for display only.
type ResultModel struct {
	viewport viewport.Model
	text     string
	width    int
}

// NewResultModel creates an empty result renderer.
func NewResultModel() ResultModel {
	return ResultModel{viewport: viewport.New(60, 10)}
}

// SetSize updates the box dimensions.
func (m *ResultModel) SetSize(width, height int) {
	if width < 10 {
		width = 10
	}
	if height < 3 {
		height = 3
	}
	m.width = width
	m.viewport.Width = width
	m.viewport.Height = height
	m.refresh()
}

// SetText replaces the rendered text.
func (m *ResultModel) SetText(text string) {
	if text == m.text {
		return
	}
	m.text = text
	m.refresh()
	m.viewport.GotoTop()
}

// Text returns the text being rendered.
func (m ResultModel) Text() string {
	return m.text
}

func (m *ResultModel) refresh() {
	if m.text == "" {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(m.text))
}

// Update scrolls the viewport.
func (m ResultModel) Update(msg tea.Msg) (ResultModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the heading and the text box, or nothing when there is no text.
func (m ResultModel) View() string {
	if m.text == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(resultTitleStyle.Render("Calorie Analysis Results"))
	b.WriteString("\n")
	b.WriteString(resultBoxStyle.Render(m.viewport.View()))

	if !m.viewport.AtTop() || !m.viewport.AtBottom() {
		b.WriteString("\n")
		b.WriteString(resultScrollStyle.Render("↕ j/k to scroll"))
	}

	return b.String()
}
