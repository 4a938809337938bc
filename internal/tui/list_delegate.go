package tui

import (
	"fmt"
	"io"
	"strings"

	"wishlist-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type wishRowDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newWishRowDelegate() wishRowDelegate {
	return wishRowDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d wishRowDelegate) Height() int  { return 1 }
func (d wishRowDelegate) Spacing() int { return 0 }
func (d wishRowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d wishRowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	row, ok := item.(wishRowItem)
	if !ok {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	line := renderWishRow(row.item, contentW, index == m.Index())
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW) + "\x1b[0m"
	}

	fmt.Fprint(w, style.Render(line))
}

// renderWishRow lays out one list row: status glyph, title, then a
// right-leaning meta section with price and desired date.
func renderWishRow(it model.WishlistItem, width int, selected bool) string {
	glyphStyle := lipgloss.NewStyle().Foreground(statusColor(it.Status))
	glyph := glyphStyle.Render(statusGlyph(it.Status))

	meta := formatPrice(it.Price)
	if it.DesiredDate != "" {
		meta += "  " + formatDateLabel(it.DesiredDate)
	}
	if !selected {
		meta = styleMuted().Render(meta)
	}

	title := it.Title
	// Reserve room for glyph, separators and meta; truncate the title, not
	// the meta.
	avail := width - xansi.StringWidth(meta) - 5
	if avail < 8 {
		avail = 8
	}
	if xansi.StringWidth(title) > avail {
		title = xansi.Cut(title, 0, avail-1) + "…"
	}

	return fmt.Sprintf(" %s %s  %s", glyph, title, meta)
}

func statusColor(s model.Status) lipgloss.TerminalColor {
	switch s {
	case model.StatusPurchased:
		return colorPurchased
	case model.StatusPostponed:
		return colorPostponed
	default:
		return colorPlanned
	}
}
