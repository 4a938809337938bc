package store

import (
	"context"
	"errors"
	"testing"

	"wishlist-cli/internal/model"
)

func testStore(t *testing.T) Store {
	t.Helper()
	return Store{Dir: t.TempDir()}
}

func sample(id string) model.WishlistItem {
	now := model.Now()
	return model.WishlistItem{
		ID:          id,
		Title:       "Standing desk",
		Price:       549.5,
		URL:         "https://example.com/desk",
		Description: "Electric, two motors.",
		DesiredDate: "2026-10-01",
		Status:      model.StatusPlanned,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestInsertGetRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	want := sample("id-1")
	if err := s.Insert(ctx, want); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.Get(ctx, "id-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestListAllEmptyIsNonNil(t *testing.T) {
	s := testStore(t)
	items, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil {
		t.Fatalf("want empty slice, got nil")
	}
	if len(items) != 0 {
		t.Fatalf("want no items, got %d", len(items))
	}
}

func TestInsertDuplicateIDConflicts(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Insert(ctx, sample("dup")); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := s.Insert(ctx, sample("dup"))
	var conflict ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("want ConflictError, got %v", err)
	}
	if conflict.ID != "dup" {
		t.Fatalf("conflict id = %q", conflict.ID)
	}
}

func TestGetMissingIsNotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(context.Background(), "nope")
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	orig := sample("id-1")
	if err := s.Insert(ctx, orig); err != nil {
		t.Fatalf("insert: %v", err)
	}

	title := "Standing desk (oak)"
	price := 599.0
	ts := model.Now()
	got, err := s.Update(ctx, "id-1", Patch{Title: &title, Price: &price, UpdatedAt: &ts})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if got.Title != title || got.Price != price || got.UpdatedAt != ts {
		t.Fatalf("patched fields not applied: %+v", got)
	}
	// Untouched fields survive the merge.
	if got.URL != orig.URL || got.DesiredDate != orig.DesiredDate || got.CreatedAt != orig.CreatedAt {
		t.Fatalf("unpatched fields changed: %+v", got)
	}

	reread, err := s.Get(ctx, "id-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reread != got {
		t.Fatalf("update return differs from stored record")
	}
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	s := testStore(t)
	title := "x"
	_, err := s.Update(context.Background(), "nope", Patch{Title: &title})
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Insert(ctx, sample("id-1")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Remove(ctx, "id-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	var nf NotFoundError
	if _, err := s.Get(ctx, "id-1"); !errors.As(err, &nf) {
		t.Fatalf("item should be gone, got %v", err)
	}
	if err := s.Remove(ctx, "id-1"); !errors.As(err, &nf) {
		t.Fatalf("second remove should be NotFoundError, got %v", err)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	if err := (Store{Dir: dir}).Insert(ctx, sample("id-1")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// A fresh Store value over the same directory sees the same data.
	got, err := (Store{Dir: dir}).Get(ctx, "id-1")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Title != "Standing desk" {
		t.Fatalf("unexpected item after reopen: %+v", got)
	}
}

func TestEventsTail(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, typ := range []string{"item.create", "item.update", "item.status", "item.delete"} {
		if err := s.AppendEvent(ctx, typ, "id-1", map[string]any{"t": typ}); err != nil {
			t.Fatalf("append %s: %v", typ, err)
		}
	}

	evs, err := s.ReadEventsTail(ctx, 2)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("want 2 events, got %d", len(evs))
	}
	// Oldest-first within the tail.
	if evs[0].Type != "item.status" || evs[1].Type != "item.delete" {
		t.Fatalf("unexpected tail order: %s, %s", evs[0].Type, evs[1].Type)
	}
	if evs[0].EntityID != "id-1" || evs[0].ID == "" || evs[0].TS == "" {
		t.Fatalf("incomplete event: %+v", evs[0])
	}

	all, err := s.ReadEventsTail(ctx, 0)
	if err != nil {
		t.Fatalf("tail all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("want 4 events, got %d", len(all))
	}
	if all[0].Type != "item.create" {
		t.Fatalf("want oldest first, got %s", all[0].Type)
	}
}
