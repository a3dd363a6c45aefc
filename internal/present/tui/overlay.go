package tui

import (
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/mithrel/scalemate/internal/review"
)

// reviewModal is the centered prompt asking for a store review.
type reviewModal struct {
	text   string
	width  int
	height int
	box    lipgloss.Style
}

func newReviewModal(url string) *reviewModal {
	m := &reviewModal{text: review.Invitation(url) + "\n\nenter to close"}
	m.box = lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))
	m.width = lipgloss.Width(m.View())
	m.height = lipgloss.Height(m.View())
	return m
}

func (r *reviewModal) View() string { return r.box.Render(r.text) }

// renderOverlay composes a centered modal on top of the given base view string.
func (m model) renderOverlay(base, fg string, overlayW, overlayH int) string {
	termW, termH := m.width, m.height
	if termW <= 0 {
		termW = 80
	}
	if termH <= 0 {
		termH = 24
	}
	x := max(0, (termW-overlayW)/2)
	y := max(0, (termH-overlayH)/2)

	dimBase := lipgloss.NewStyle().Faint(true).Render(base)
	baseLayer := lipgloss.NewLayer(dimBase).
		Width(termW).
		Height(termH)
	fgLayer := lipgloss.NewLayer(fg).
		Width(overlayW).
		Height(overlayH).
		X(x).
		Y(y)
	return lipgloss.NewCanvas(baseLayer, fgLayer).Render()
}
