package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const modalMaxWidth = 72

func modalBodyWidth(screenWidth int) int {
	w := screenWidth - 10
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < 24 {
		w = 24
	}
	return w
}

// renderModalBox draws a titled surface box sized to the screen width.
// Borders are avoided inside modals: some terminals show background artifacts
// when nesting bordered components on a background color.
func renderModalBox(screenWidth int, title string, content string) string {
	bodyW := modalBodyWidth(screenWidth)

	header := lipgloss.NewStyle().
		Width(bodyW+2).
		Padding(0, 1).
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Render(title)

	body := lipgloss.NewStyle().
		Width(bodyW+2).
		Padding(1, 1).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Render(content)

	return strings.Join([]string{header, body}, "\n")
}

func placeCentered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
