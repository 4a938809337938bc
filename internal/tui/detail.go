package tui

import (
	"strings"

	"wishlist-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// renderItemDetail draws the side panel for the selected item.
func renderItemDetail(it model.WishlistItem, width, height int) string {
	if width < 20 {
		width = 20
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Width(width)
	labelStyle := styleMuted()
	badgeStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceBg).
		Background(statusColor(it.Status))

	lines := []string{
		titleStyle.Render(it.Title),
		"",
		badgeStyle.Render(statusLabel(it.Status)) + "  " + formatPrice(it.Price),
	}

	if it.DesiredDate != "" {
		lines = append(lines, labelStyle.Render("wanted by ")+formatDateLabel(it.DesiredDate))
	}
	if it.URL != "" {
		lines = append(lines, labelStyle.Render("link ")+it.URL)
	}
	if it.Image != "" {
		lines = append(lines, labelStyle.Render("image ")+truncateRef(it.Image, width-8))
	}

	if strings.TrimSpace(it.Description) != "" {
		lines = append(lines, "", renderMarkdown(it.Description, width-2))
	}

	lines = append(lines, "", labelStyle.Render("added "+formatTimestampLabel(it.CreatedAt)))

	body := strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(0, 1).
		Render(body)
}

// truncateRef keeps long data: URIs from flooding the panel.
func truncateRef(ref string, max int) string {
	if max < 12 {
		max = 12
	}
	if len(ref) <= max {
		return ref
	}
	return ref[:max-1] + "…"
}

func formatTimestampLabel(ts string) string {
	t, err := model.ParseTimestamp(ts)
	if err != nil {
		return ts
	}
	return t.Format("Jan 2 2006 15:04")
}
