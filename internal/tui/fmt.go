package tui

import (
	"fmt"
	"strings"
	"time"

	"wishlist-cli/internal/model"
)

// formatPrice renders an amount with thousands separators and two decimals,
// e.g. "1,234.50". Currency presentation is a UI concern only; the stored
// amount is currency-agnostic.
func formatPrice(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

// formatDateLabel renders a YYYY-MM-DD date as "Jan 2 2006". Falls back to
// the raw string for anything unparseable.
func formatDateLabel(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("Jan 2 2006")
}

func statusLabel(s model.Status) string {
	switch s {
	case model.StatusPurchased:
		return "purchased"
	case model.StatusPostponed:
		return "postponed"
	default:
		return "planned"
	}
}

func statusGlyph(s model.Status) string {
	switch s {
	case model.StatusPurchased:
		return "✔"
	case model.StatusPostponed:
		return "…"
	default:
		return "○"
	}
}

// nextStatus cycles planned -> purchased -> postponed -> planned.
func nextStatus(s model.Status) model.Status {
	switch s {
	case model.StatusPlanned:
		return model.StatusPurchased
	case model.StatusPurchased:
		return model.StatusPostponed
	default:
		return model.StatusPlanned
	}
}
