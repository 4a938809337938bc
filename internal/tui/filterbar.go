package tui

import (
	"fmt"
	"strings"

	"wishlist-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// renderFilterBar summarizes the active filter and sort state in one line.
// Status chips mirror the toggle keys: an empty toggled set means every
// status is shown.
func renderFilterBar(f model.Filter, s model.Sort) string {
	chipOn := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceBg).
		Background(colorAccent)
	chipOff := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)

	var chips []string
	for i, st := range model.KnownStatuses {
		label := fmt.Sprintf("%d:%s", i+1, statusLabel(st))
		style := chipOff
		if len(f.Statuses) == 0 || f.HasStatus(st) {
			style = chipOn
		}
		chips = append(chips, style.Render(label))
	}

	parts := []string{strings.Join(chips, " ")}

	if f.MinPrice != nil || f.MaxPrice != nil {
		lo, hi := "…", "…"
		if f.MinPrice != nil {
			lo = formatPrice(*f.MinPrice)
		}
		if f.MaxPrice != nil {
			hi = formatPrice(*f.MaxPrice)
		}
		parts = append(parts, fmt.Sprintf("price %s–%s", lo, hi))
	}
	if f.DateFrom != "" || f.DateTo != "" {
		lo, hi := "…", "…"
		if f.DateFrom != "" {
			lo = f.DateFrom
		}
		if f.DateTo != "" {
			hi = f.DateTo
		}
		parts = append(parts, fmt.Sprintf("date %s–%s", lo, hi))
	}

	arrow := "↓"
	if s.Order == model.SortAsc {
		arrow = "↑"
	}
	parts = append(parts, fmt.Sprintf("sort %s %s", s.Field, arrow))

	return strings.Join(parts, styleMuted().Render("  │  "))
}
