package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

func (m *model) initTable() {
	cols := []table.Column{
		{Title: "", Width: 2},
		{Title: "Page", Width: 32},
		{Title: "Name", Width: 20},
	}
	m.table = table.New(table.WithColumns(cols), table.WithFocused(true))
	m.refreshRows()
	m.applyStyles()
}

// refreshRows marks pages the user has already opened.
func (m *model) refreshRows() {
	rows := make([]table.Row, 0, len(m.pages))
	for _, p := range m.pages {
		mark := " "
		if m.opts.User != nil && m.opts.User.HasViewedHelpPage(p.Name) {
			mark = "✓"
		}
		rows = append(rows, table.Row{mark, p.Title, p.Name})
	}
	m.table.SetRows(rows)
}

func (m *model) applyStyles() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(s)
}
