package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/savour/internal/analysis"
	"github.com/f3rmion/savour/internal/config"
	"github.com/f3rmion/savour/internal/feedback"
	"github.com/f3rmion/savour/internal/form"
	"github.com/f3rmion/savour/internal/preview"
	"github.com/f3rmion/savour/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewAnalyze ViewType = iota
	ViewFilePicker
	ViewFeedback
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

// Analyzer sends a photo for analysis. *analysis.Client satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (string, error)
}

// Options configures the application.
type Options struct {
	Config      *config.Config
	ConfigDir   string
	Analyzer    Analyzer
	AnalysisURL string            // shown on the settings view
	Recorder    feedback.Recorder // defaults to a LogRecorder
	Logger      *slog.Logger      // defaults to slog.Default()
	Context     context.Context   // program context for effects
}

// AppModel is the main unified TUI model
type AppModel struct {
	config   *config.Config
	analyzer Analyzer
	recorder feedback.Recorder
	logger   *slog.Logger

	// ctx is handed to every effect. Quitting does not cancel it: settlements
	// from a torn-down session are dropped by generation instead.
	ctx context.Context

	state form.State

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	analyzeView    views.AnalyzeModel
	filePickerView views.FilePickerModel
	feedbackView   views.FeedbackModel
	settingsView   views.SettingsModel

	status string

	showHelp bool
}

// NewApp creates the application.
func NewApp(opts Options) AppModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = feedback.NewLogRecorder(logger)
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	menuItems := []MenuItem{
		{Label: "Analyze", View: ViewAnalyze, Shortcut: "1"},
		{Label: "Photo", View: ViewFilePicker, Shortcut: "2"},
		{Label: "Feedback", View: ViewFeedback, Shortcut: "3"},
		{Label: "Settings", View: ViewSettings, Shortcut: "4"},
	}

	return AppModel{
		config:       cfg,
		analyzer:     opts.Analyzer,
		recorder:     recorder,
		logger:       logger,
		ctx:          ctx,
		state:        form.New(),
		sidebarWidth: 18,
		currentView:  ViewAnalyze,
		menuItems:    menuItems,

		analyzeView:    views.NewAnalyzeModel(),
		filePickerView: views.NewFilePickerModel(cfg.PickerDir()),
		feedbackView:   views.NewFeedbackModel(),
		settingsView:   views.NewSettingsModel(cfg, opts.ConfigDir, opts.AnalysisURL),
	}
}

// State returns the current form state.
func (m AppModel) State() form.State {
	return m.state
}

// CurrentView returns the active view.
func (m AppModel) CurrentView() ViewType {
	return m.currentView
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			cmd := m.quit()
			return m, cmd
		case "esc":
			if m.feedbackView.Focused() {
				m.feedbackView.Blur()
				return m, nil
			}
			if m.currentView == ViewFilePicker {
				m.switchTo(ViewAnalyze)
				return m, nil
			}
			if m.sidebarActive {
				cmd := m.quit()
				return m, cmd
			}
			m.sidebarActive = true
			return m, nil
		case "tab":
			m.feedbackView.Blur()
			m.sidebarActive = !m.sidebarActive
			return m, nil
		}

		// Everything else is text while the feedback box has focus.
		if !m.feedbackView.Focused() {
			switch msg.String() {
			case "q":
				cmd := m.quit()
				return m, cmd
			case "?":
				m.showHelp = true
				return m, nil
			case "1", "2", "3", "4":
				m.switchTo(m.menuItems[int(msg.String()[0]-'1')].View)
				return m, nil
			}
		}

		if m.sidebarActive {
			switch msg.String() {
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case "enter", "l", "right":
				m.switchTo(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

		if m.currentView == ViewFeedback && !m.feedbackView.Focused() {
			switch msg.String() {
			case "enter", "i":
				cmd := m.feedbackView.Focus()
				return m, cmd
			case "ctrl+s":
				cmd := m.dispatch(form.SubmitFeedback{})
				return m, cmd
			}
			return m, nil
		}

		return m.updateActive(msg)

	case tea.MouseMsg:
		return m.updateActive(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.analyzeView.SetSize(contentWidth, contentHeight)
		m.filePickerView.SetSize(contentWidth, contentHeight)
		m.feedbackView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		return m, nil

	case ViewSwitchMsg:
		m.switchTo(msg.View)
		return m, nil

	case views.OpenPickerMsg:
		m.switchTo(ViewFilePicker)
		return m, nil

	case views.FileSelectedMsg:
		f, err := preview.Open(msg.Path)
		if err != nil {
			m.logger.Error("Opening photo failed", "path", msg.Path, "err", err)
			m.status = "Could not open " + msg.Path
			return m, nil
		}
		m.status = ""
		m.switchTo(ViewAnalyze)
		cmd := m.dispatch(form.PickImage{File: f})
		return m, cmd

	case form.Action:
		cmd := m.dispatch(msg)
		return m, cmd
	}

	// Timers and blinks: the analyze view owns the spinner and copy notice,
	// the feedback view owns the cursor.
	var cmds []tea.Cmd
	var a form.Action
	var cmd tea.Cmd

	m.analyzeView, a, cmd = m.analyzeView.Update(msg, m.state)
	cmds = append(cmds, cmd, m.dispatch(a))

	m.feedbackView, a, cmd = m.feedbackView.Update(msg, m.state)
	cmds = append(cmds, cmd, m.dispatch(a))

	return m, tea.Batch(cmds...)
}

// updateActive routes input to the current view.
func (m AppModel) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var a form.Action
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAnalyze:
		m.analyzeView, a, cmd = m.analyzeView.Update(msg, m.state)
	case ViewFilePicker:
		m.filePickerView, cmd = m.filePickerView.Update(msg)
	case ViewFeedback:
		m.feedbackView, a, cmd = m.feedbackView.Update(msg, m.state)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}

	cmd = tea.Batch(cmd, m.dispatch(a))
	return m, cmd
}

func (m *AppModel) switchTo(v ViewType) {
	m.currentView = v
	m.sidebarActive = false
	if v != ViewFeedback {
		m.feedbackView.Blur()
	}
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
}

// quit invalidates outstanding work before exiting.
func (m *AppModel) quit() tea.Cmd {
	m.dispatch(form.Teardown{})
	return tea.Quit
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewAnalyze:
		content = m.analyzeView.View(m.state)
	case ViewFilePicker:
		content = m.filePickerView.View()
	case ViewFeedback:
		content = m.feedbackView.View(m.state)
	case ViewSettings:
		content = m.settingsView.View(m.state.Language)
	}
	if m.status != "" {
		content += "\n" + SidebarBusyStyle.Render(m.status)
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render(" SavourSAGE "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		var style lipgloss.Style
		switch {
		case i == m.selectedMenu && m.sidebarActive:
			style = SidebarItemActiveStyle
		case i == m.selectedMenu:
			style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
		default:
			style = SidebarItemStyle
		}
		items = append(items, style.Render(label))
	}

	if m.state.Loading() {
		items = append(items, "", SidebarBusyStyle.Render("analyzing…"))
	}

	usedHeight := len(items) + 4
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	items = append(items, SidebarHelpStyle.Render("? Help  q Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

func (m AppModel) renderHelp() string {
	line := func(key, desc string) string {
		return HelpKeyStyle.Render(key) + HelpDescStyle.Render(desc) + "\n"
	}

	helpText := HelpTitleStyle.Render("SavourSAGE - food photo analysis") + "\n\n"

	helpText += HelpSectionStyle.Render("Global Keys") + "\n"
	helpText += line("1-4", "Switch views")
	helpText += line("tab", "Toggle sidebar focus")
	helpText += line("?", "Show this help")
	helpText += line("q", "Quit")

	helpText += HelpSectionStyle.Render("Analyze") + "\n"
	helpText += line("←/→", "Change language")
	helpText += line("o", "Choose a photo")
	helpText += line("enter", "Analyze photo")
	helpText += line("j/k", "Scroll result")
	helpText += line("y", "Copy result")

	helpText += HelpSectionStyle.Render("Photo Picker") + "\n"
	helpText += line("enter", "Select photo/enter dir")
	helpText += line("backspace", "Go to parent dir")
	helpText += line("~", "Go to home dir")

	helpText += HelpSectionStyle.Render("Feedback") + "\n"
	helpText += line("enter", "Start typing")
	helpText += line("ctrl+s", "Submit feedback")
	helpText += line("esc", "Stop typing")

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(helpText))
}
