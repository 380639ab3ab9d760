package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/savour/internal/language"
	"github.com/mattn/go-runewidth"
)

var (
	langOptionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	langOptionActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 1)
)

// nameWidth is the display width of the longest catalog name.
var nameWidth = func() int {
	w := 0
	for _, opt := range language.All() {
		w = max(w, runewidth.StringWidth(opt.Name))
	}
	return w
}()

// RenderLanguages draws the catalog as a single-choice row with selected
// highlighted. Rows wrap when wider than width.
func RenderLanguages(selected string, width int) string {
	var cells []string
	for _, opt := range language.All() {
		label := runewidth.FillRight(opt.Name, nameWidth)
		if opt.Code == selected {
			cells = append(cells, langOptionActiveStyle.Render("● "+label))
		} else {
			cells = append(cells, langOptionStyle.Render("○ "+label))
		}
	}

	if width <= 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}

	var rows []string
	var row []string
	rowWidth := 0
	for _, c := range cells {
		w := lipgloss.Width(c)
		if rowWidth+w > width && len(row) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
			rowWidth = 0
		}
		row = append(row, c)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return strings.Join(rows, "\n")
}
