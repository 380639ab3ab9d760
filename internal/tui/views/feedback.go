package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/savour/internal/form"
)

var (
	feedbackTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#16a34a"))

	feedbackAckStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8e6cf")).
				Bold(true)

	feedbackBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#3d5a80"))

	feedbackBoxFocusedStyle = feedbackBoxStyle.
				BorderForeground(lipgloss.Color("#4ade80"))
)

// FeedbackModel is the free-text feedback box.
type FeedbackModel struct {
	input textarea.Model

	width  int
	height int
}

// NewFeedbackModel creates the feedback view.
func NewFeedbackModel() FeedbackModel {
	ta := textarea.New()
	ta.Placeholder = "Share your thoughts about SavourSAGE..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(60)
	ta.SetHeight(5)

	return FeedbackModel{input: ta}
}

// SetSize updates the view dimensions.
func (m *FeedbackModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	w := min(width-6, 80)
	if w < 20 {
		w = 20
	}
	m.input.SetWidth(w)
	m.input.SetHeight(max(3, min(height-10, 8)))
}

// Focus starts capturing keystrokes.
func (m *FeedbackModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur stops capturing keystrokes.
func (m *FeedbackModel) Blur() {
	m.input.Blur()
}

// Focused reports whether the box is capturing keystrokes.
func (m FeedbackModel) Focused() bool {
	return m.input.Focused()
}

// Sync brings the textarea in line with st. A cleared draft clears the box.
func (m *FeedbackModel) Sync(st form.State) {
	if st.Feedback.Draft == "" && m.input.Value() != "" {
		m.input.Reset()
	}
}

// Update edits the draft. ctrl+s submits it.
func (m FeedbackModel) Update(msg tea.Msg, st form.State) (FeedbackModel, form.Action, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+s" {
		return m, form.SubmitFeedback{}, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if v := m.input.Value(); v != st.Feedback.Draft {
		return m, form.EditFeedback{Text: v}, cmd
	}
	return m, nil, cmd
}

// View renders the feedback box for st.
func (m FeedbackModel) View(st form.State) string {
	var b strings.Builder

	b.WriteString(feedbackTitleStyle.Render("Your Feedback"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Help us improve SavourSAGE"))
	b.WriteString("\n\n")

	box := feedbackBoxStyle
	if m.input.Focused() {
		box = feedbackBoxFocusedStyle
	}
	b.WriteString(box.Render(m.input.View()))
	b.WriteString("\n\n")

	b.WriteString(buttonStyle.Render("Submit Feedback"))
	b.WriteString("\n")

	if st.Feedback.Acknowledged {
		b.WriteString("\n")
		b.WriteString(feedbackAckStyle.Render(form.AckText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.input.Focused() {
		b.WriteString(helpStyle.Render("ctrl+s: submit • esc: stop typing"))
	} else {
		b.WriteString(helpStyle.Render("enter/i: start typing • ctrl+s: submit"))
	}

	return b.String()
}
