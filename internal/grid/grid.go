// ABOUTME: Terminal data-grid rendering for resource listings
// ABOUTME: Renders static tables with bubbles/table and shared lipgloss styles

package grid

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerColor = lipgloss.Color("#7C3AED") // Purple
	borderColor = lipgloss.Color("#6B7280") // Gray

	emptyStyle = lipgloss.NewStyle().
			Foreground(borderColor).
			Italic(true)
)

// Render draws headers and rows as a static table. Column widths fit the
// widest cell. Returns a placeholder line when there are no rows.
func Render(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return emptyStyle.Render("(no results)")
	}

	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		width := len(h)
		for _, row := range rows {
			if i < len(row) && len(row[i]) > width {
				width = len(row[i])
			}
		}
		cols[i] = table.Column{Title: h, Width: width + 2}
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(tableRows),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true).
		Foreground(headerColor)
	// Static output: no row selection highlight
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t.View()
}
