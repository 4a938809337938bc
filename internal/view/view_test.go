package view

import (
	"testing"

	"wishlist-cli/internal/model"
)

func item(id, title string, price float64, date string, status model.Status, created string) model.WishlistItem {
	return model.WishlistItem{
		ID:          id,
		Title:       title,
		Price:       price,
		DesiredDate: date,
		Status:      status,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func fixture() []model.WishlistItem {
	return []model.WishlistItem{
		item("1", "banana stand", 18000, "2026-01-01", model.StatusPlanned, "2026-08-01T10:00:00.000000000Z"),
		item("2", "Apple watch", 399.99, "", model.StatusPlanned, "2026-08-02T10:00:00.000000000Z"),
		item("3", "camera", 1200, "2025-12-24", model.StatusPurchased, "2026-08-03T10:00:00.000000000Z"),
		item("4", "bike", 850, "2026-03-15", model.StatusPostponed, "2026-08-04T10:00:00.000000000Z"),
	}
}

func ids(items []model.WishlistItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func wantOrder(t *testing.T, got []model.WishlistItem, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestDeriveNoFilterReturnsEverything(t *testing.T) {
	got := Derive(fixture(), model.Filter{}, model.Sort{Field: model.SortByCreatedAt, Order: model.SortAsc})
	wantOrder(t, got, "1", "2", "3", "4")
}

func TestDeriveAllStatusesEqualsNoFilter(t *testing.T) {
	all := model.Filter{Statuses: []model.Status{model.StatusPlanned, model.StatusPurchased, model.StatusPostponed}}
	none := model.Filter{}
	s := model.DefaultSort()
	if len(Derive(fixture(), all, s)) != len(Derive(fixture(), none, s)) {
		t.Fatalf("full status set should match no status filter")
	}
}

func TestDeriveStatusFilter(t *testing.T) {
	f := model.Filter{Statuses: []model.Status{model.StatusPlanned}}
	got := Derive(fixture(), f, model.Sort{Field: model.SortByCreatedAt, Order: model.SortAsc})
	wantOrder(t, got, "1", "2")
}

func TestDerivePriceBoundsInclusive(t *testing.T) {
	lo, hi := 399.99, 1200.0
	f := model.Filter{MinPrice: &lo, MaxPrice: &hi}
	got := Derive(fixture(), f, model.Sort{Field: model.SortByPrice, Order: model.SortAsc})
	wantOrder(t, got, "2", "4", "3")
}

func TestDeriveDateBoundsExcludeDatelessItems(t *testing.T) {
	f := model.Filter{DateFrom: "2025-01-01"}
	got := Derive(fixture(), f, model.Sort{Field: model.SortByCreatedAt, Order: model.SortAsc})
	// Item 2 has no desiredDate and must not match a date-bounded filter.
	wantOrder(t, got, "1", "3", "4")

	f = model.Filter{DateTo: "2026-01-01"}
	got = Derive(fixture(), f, model.Sort{Field: model.SortByCreatedAt, Order: model.SortAsc})
	wantOrder(t, got, "1", "3")
}

func TestDeriveFiltersCompose(t *testing.T) {
	min := 500.0
	f := model.Filter{
		Statuses: []model.Status{model.StatusPlanned, model.StatusPostponed},
		MinPrice: &min,
		DateFrom: "2026-01-01",
	}
	got := Derive(fixture(), f, model.Sort{Field: model.SortByPrice, Order: model.SortAsc})
	wantOrder(t, got, "4", "1")
}

func TestDeriveTitleSortCaseInsensitive(t *testing.T) {
	got := Derive(fixture(), model.Filter{}, model.Sort{Field: model.SortByTitle, Order: model.SortAsc})
	// "Apple watch" sorts before "banana stand" despite the uppercase A.
	wantOrder(t, got, "2", "1", "4", "3")
}

func TestDeriveDescIsExactReversalOfAsc(t *testing.T) {
	for _, field := range []model.SortField{model.SortByTitle, model.SortByPrice, model.SortByDesiredDate, model.SortByCreatedAt} {
		asc := Derive(fixture(), model.Filter{}, model.Sort{Field: field, Order: model.SortAsc})
		desc := Derive(fixture(), model.Filter{}, model.Sort{Field: field, Order: model.SortDesc})
		if len(asc) != len(desc) {
			t.Fatalf("%s: length mismatch", field)
		}
		for i := range asc {
			j := len(desc) - 1 - i
			if asc[i].ID != desc[j].ID {
				t.Fatalf("%s: desc is not the reversal of asc: asc=%v desc=%v", field, ids(asc), ids(desc))
			}
		}
	}
}

func TestDeriveSortIsStableOnTies(t *testing.T) {
	items := []model.WishlistItem{
		item("a", "same", 10, "", model.StatusPlanned, "2026-08-01T00:00:00.000000000Z"),
		item("b", "same", 10, "", model.StatusPlanned, "2026-08-02T00:00:00.000000000Z"),
		item("c", "same", 10, "", model.StatusPlanned, "2026-08-03T00:00:00.000000000Z"),
	}
	got := Derive(items, model.Filter{}, model.Sort{Field: model.SortByPrice, Order: model.SortAsc})
	wantOrder(t, got, "a", "b", "c")
	got = Derive(items, model.Filter{}, model.Sort{Field: model.SortByPrice, Order: model.SortDesc})
	wantOrder(t, got, "a", "b", "c")
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	in := fixture()
	_ = Derive(in, model.Filter{}, model.Sort{Field: model.SortByTitle, Order: model.SortAsc})
	wantOrder(t, in, "1", "2", "3", "4")
}

func TestPlannedTotal(t *testing.T) {
	got := PlannedTotal(fixture())
	want := 18000 + 399.99
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if PlannedTotal(nil) != 0 {
		t.Fatalf("empty collection should total zero")
	}
}

func TestPlannedTotalFollowsFilteredView(t *testing.T) {
	min := 1000.0
	visible := Derive(fixture(), model.Filter{MinPrice: &min}, model.DefaultSort())
	if got := PlannedTotal(visible); got != 18000 {
		t.Fatalf("got %v, want 18000", got)
	}
}
