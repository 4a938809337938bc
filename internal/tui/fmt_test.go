package tui

import (
	"os"
	"strings"
	"testing"

	"wishlist-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	// Plain strings in render tests regardless of the terminal running them.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{9.9, "9.90"},
		{40, "40.00"},
		{1234.5, "1,234.50"},
		{1234567.891, "1,234,567.89"},
		{-1234.5, "-1,234.50"},
	}
	for _, tc := range cases {
		if got := formatPrice(tc.in); got != tc.want {
			t.Fatalf("formatPrice(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDateLabel(t *testing.T) {
	if got := formatDateLabel("2026-12-01"); got != "Dec 1 2026" {
		t.Fatalf("got %q", got)
	}
	if got := formatDateLabel(""); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := formatDateLabel("soon"); got != "soon" {
		t.Fatalf("unparseable input should pass through, got %q", got)
	}
}

func TestStatusCycle(t *testing.T) {
	s := model.StatusPlanned
	seen := map[model.Status]bool{}
	for i := 0; i < 3; i++ {
		seen[s] = true
		s = nextStatus(s)
	}
	if s != model.StatusPlanned || len(seen) != 3 {
		t.Fatalf("cycle broken: back at %s after visiting %d statuses", s, len(seen))
	}
	for _, st := range model.KnownStatuses {
		if prevStatus(nextStatus(st)) != st {
			t.Fatalf("prev(next(%s)) != %s", st, st)
		}
	}
}

func TestRenderWishRow(t *testing.T) {
	it := model.WishlistItem{
		Title:       "Espresso machine",
		Price:       649,
		DesiredDate: "2026-12-01",
		Status:      model.StatusPlanned,
	}
	row := renderWishRow(it, 60, false)
	for _, want := range []string{"Espresso machine", "649.00", "Dec 1 2026"} {
		if !strings.Contains(row, want) {
			t.Fatalf("row %q missing %q", row, want)
		}
	}
}

func TestRenderWishRowTruncatesLongTitles(t *testing.T) {
	it := model.WishlistItem{
		Title:  strings.Repeat("very long title ", 10),
		Price:  1,
		Status: model.StatusPlanned,
	}
	row := renderWishRow(it, 40, false)
	if !strings.Contains(row, "…") {
		t.Fatalf("expected truncation marker in %q", row)
	}
	if !strings.Contains(row, "1.00") {
		t.Fatalf("meta must survive truncation: %q", row)
	}
}

func TestTruncateRef(t *testing.T) {
	long := "data:image/png;base64," + strings.Repeat("A", 500)
	got := truncateRef(long, 40)
	if len(got) > 43 { // 39 bytes + multibyte ellipsis
		t.Fatalf("len = %d", len(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("got %q", got)
	}
	if truncateRef("short", 40) != "short" {
		t.Fatalf("short refs pass through")
	}
}

func TestRenderFilterBar(t *testing.T) {
	min := 100.0
	f := model.Filter{
		Statuses: []model.Status{model.StatusPlanned},
		MinPrice: &min,
		DateTo:   "2026-12-31",
	}
	s := model.Sort{Field: model.SortByPrice, Order: model.SortAsc}
	bar := renderFilterBar(f, s)
	for _, want := range []string{"1:planned", "2:purchased", "3:postponed", "price 100.00–…", "date …–2026-12-31", "sort price ↑"} {
		if !strings.Contains(bar, want) {
			t.Fatalf("bar %q missing %q", bar, want)
		}
	}
}

func TestToggleStatusChip(t *testing.T) {
	m := appModel{}

	// First toggle on an implicit all-on set switches that status off.
	m.toggleStatusChip(model.StatusPurchased)
	if m.filter.HasStatus(model.StatusPurchased) || len(m.filter.Statuses) != 2 {
		t.Fatalf("after first toggle: %+v", m.filter.Statuses)
	}

	// Toggling it back on restores "no filter".
	m.toggleStatusChip(model.StatusPurchased)
	if len(m.filter.Statuses) != 0 {
		t.Fatalf("full set should collapse to empty: %+v", m.filter.Statuses)
	}

	m.toggleStatusChip(model.StatusPlanned)
	m.toggleStatusChip(model.StatusPostponed)
	if len(m.filter.Statuses) != 1 || !m.filter.HasStatus(model.StatusPurchased) {
		t.Fatalf("got %+v", m.filter.Statuses)
	}
}

func TestNextSortField(t *testing.T) {
	f := model.SortByCreatedAt
	seen := map[model.SortField]bool{}
	for i := 0; i < 4; i++ {
		seen[f] = true
		f = nextSortField(f)
	}
	if f != model.SortByCreatedAt || len(seen) != 4 {
		t.Fatalf("cycle broken: back at %s after %d fields", f, len(seen))
	}
}

func TestFloatOrEmpty(t *testing.T) {
	if floatOrEmpty(nil) != "" {
		t.Fatalf("nil should render empty")
	}
	v := 12.5
	if got := floatOrEmpty(&v); got != "12.5" {
		t.Fatalf("got %q", got)
	}
}
