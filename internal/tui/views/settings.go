package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/savour/internal/config"
	"github.com/f3rmion/savour/internal/language"
	"github.com/mattn/go-runewidth"
)

var (
	settingsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#16a34a")).
				MarginBottom(1)

	settingsPathStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true).
				MarginBottom(1)

	settingsTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	settingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 2)

	settingsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#a8dadc"))

	settingsRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1faee"))

	settingsMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	settingsHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				MarginTop(1)
)

var settingsTabs = []string{"Connection", "Languages"}

// SettingsModel shows the effective configuration.
type SettingsModel struct {
	config      *config.Config
	configDir   string
	analysisURL string

	tab int

	width  int
	height int
}

// NewSettingsModel creates the settings view. analysisURL is the resolved
// endpoint the client posts to.
func NewSettingsModel(cfg *config.Config, configDir, analysisURL string) SettingsModel {
	if cfg == nil {
		cfg = config.Default()
	}
	return SettingsModel{
		config:      cfg,
		configDir:   configDir,
		analysisURL: analysisURL,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "right", "l":
			m.tab = (m.tab + 1) % len(settingsTabs)
		case "left", "h":
			m.tab = (m.tab + len(settingsTabs) - 1) % len(settingsTabs)
		}
	}
	return m, nil
}

// View renders the settings view. current is the selected language code.
func (m SettingsModel) View(current string) string {
	var b strings.Builder

	b.WriteString(settingsTitleStyle.Render("SavourSAGE Configuration"))
	b.WriteString("\n")
	b.WriteString(settingsPathStyle.Render("Config: " + m.configDir))
	b.WriteString("\n\n")

	var tabViews []string
	for i, t := range settingsTabs {
		style := settingsTabStyle
		if i == m.tab {
			style = settingsTabActiveStyle
		}
		tabViews = append(tabViews, style.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabViews...))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80")).Render(strings.Repeat("─", max(0, min(m.width-4, 60)))))
	b.WriteString("\n\n")

	switch m.tab {
	case 0:
		b.WriteString(m.renderConnection())
	case 1:
		b.WriteString(m.renderLanguages(current))
	}

	b.WriteString("\n")
	b.WriteString(settingsHelpStyle.Render("←/→: switch tabs • edit " + config.FileName + " or use SAVOUR_* env vars to change"))

	return b.String()
}

func (m SettingsModel) renderConnection() string {
	rows := [][2]string{
		{"Endpoint", m.config.Endpoint},
		{"Analysis URL", m.analysisURL},
		{"Photo folder", m.config.PickerDir()},
		{"Log file", m.config.LogPath(m.configDir)},
		{"Verbose", fmt.Sprintf("%t", m.config.Verbose)},
	}
	return renderRows("Client", rows)
}

func (m SettingsModel) renderLanguages(current string) string {
	var b strings.Builder
	b.WriteString(settingsHeaderStyle.Render(fmt.Sprintf("Languages (%d available)", len(language.All()))))
	b.WriteString("\n\n")
	b.WriteString(settingsMutedStyle.Render(fmt.Sprintf("%-6s %s", "Code", "Name")))
	b.WriteString("\n")
	b.WriteString(settingsMutedStyle.Render(strings.Repeat("─", 30)))
	b.WriteString("\n")

	for _, opt := range language.All() {
		row := fmt.Sprintf("%-6s %s", opt.Code, opt.Name)
		if opt.Code == current {
			row += "  (selected)"
		}
		b.WriteString(settingsRowStyle.Render(row))
		b.WriteString("\n")
	}
	return b.String()
}

func renderRows(title string, rows [][2]string) string {
	var b strings.Builder
	b.WriteString(settingsHeaderStyle.Render(title))
	b.WriteString("\n\n")

	keyWidth := 0
	for _, r := range rows {
		keyWidth = max(keyWidth, runewidth.StringWidth(r[0]))
	}
	for _, r := range rows {
		value := r[1]
		if value == "" {
			value = settingsMutedStyle.Render("(not set)")
		} else {
			value = settingsRowStyle.Render(value)
		}
		b.WriteString(settingsMutedStyle.Render(runewidth.FillRight(r[0], keyWidth)))
		b.WriteString("  ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	return b.String()
}
