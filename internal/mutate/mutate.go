// Package mutate is the item lifecycle: create, edit, delete and status
// changes against the store. Each operation is self-contained given its
// id/draft; nothing here holds a current selection across calls.
package mutate

import (
	"context"
	"errors"
	"strings"
	"time"

	"wishlist-cli/internal/model"
	"wishlist-cli/internal/store"

	"github.com/google/uuid"
)

func validateDraft(d model.Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if d.Price < 0 {
		return ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if d.Status != "" {
		if _, err := model.ParseStatus(string(d.Status)); err != nil {
			return ValidationError{Field: "status", Reason: err.Error()}
		}
	}
	if d.DesiredDate != "" && !model.ValidDate(d.DesiredDate) {
		return ValidationError{Field: "desiredDate", Reason: "expected YYYY-MM-DD"}
	}
	return nil
}

// Create validates the draft, assigns a fresh id and timestamps, and inserts.
// A duplicate id should not occur under UUID generation; if it does, the id is
// regenerated once before giving up.
func Create(ctx context.Context, s store.Store, d model.Draft) (model.WishlistItem, error) {
	if err := validateDraft(d); err != nil {
		return model.WishlistItem{}, err
	}

	status := d.Status
	if status == "" {
		status = model.StatusPlanned
	}
	now := model.Now()
	it := model.WishlistItem{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(d.Title),
		Price:       d.Price,
		URL:         d.URL,
		Image:       d.Image,
		Description: d.Description,
		DesiredDate: d.DesiredDate,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.Insert(ctx, it)
	var conflict store.ConflictError
	if errors.As(err, &conflict) {
		it.ID = uuid.NewString()
		err = s.Insert(ctx, it)
	}
	if err != nil {
		return model.WishlistItem{}, err
	}
	_ = s.AppendEvent(ctx, "item.create", it.ID, it)
	return it, nil
}

// Edit replaces all user-editable fields with the draft and refreshes
// updatedAt. NotFoundError propagates from the store.
func Edit(ctx context.Context, s store.Store, id string, d model.Draft) (model.WishlistItem, error) {
	if err := validateDraft(d); err != nil {
		return model.WishlistItem{}, err
	}

	prev, err := s.Get(ctx, id)
	if err != nil {
		return model.WishlistItem{}, err
	}

	title := strings.TrimSpace(d.Title)
	status := d.Status
	if status == "" {
		status = model.StatusPlanned
	}
	now := laterThan(prev.UpdatedAt)
	it, err := s.Update(ctx, id, store.Patch{
		Title:       &title,
		Price:       &d.Price,
		URL:         &d.URL,
		Image:       &d.Image,
		Description: &d.Description,
		DesiredDate: &d.DesiredDate,
		Status:      &status,
		UpdatedAt:   &now,
	})
	if err != nil {
		return model.WishlistItem{}, err
	}
	_ = s.AppendEvent(ctx, "item.update", it.ID, it)
	return it, nil
}

// Delete removes an item. Confirmation happens at the surface (TUI modal,
// CLI prompt); by the time this runs the user already said yes.
func Delete(ctx context.Context, s store.Store, id string) error {
	if err := s.Remove(ctx, id); err != nil {
		return err
	}
	_ = s.AppendEvent(ctx, "item.delete", id, nil)
	return nil
}

// ChangeStatus updates only status and updatedAt. It is the one mutation that
// skips full-form validation.
func ChangeStatus(ctx context.Context, s store.Store, id string, status model.Status) (model.WishlistItem, error) {
	st, err := model.ParseStatus(string(status))
	if err != nil {
		return model.WishlistItem{}, ValidationError{Field: "status", Reason: err.Error()}
	}

	prev, err := s.Get(ctx, id)
	if err != nil {
		return model.WishlistItem{}, err
	}
	now := laterThan(prev.UpdatedAt)
	it, err := s.Update(ctx, id, store.Patch{Status: &st, UpdatedAt: &now})
	if err != nil {
		return model.WishlistItem{}, err
	}
	_ = s.AppendEvent(ctx, "item.status", it.ID, map[string]any{"status": st})
	return it, nil
}

// laterThan returns now, bumped just past prev if the clock hasn't advanced.
// Keeps updatedAt strictly increasing even on coarse clocks.
func laterThan(prev string) string {
	now := model.Now()
	if now > prev {
		return now
	}
	t, err := model.ParseTimestamp(prev)
	if err != nil {
		return now
	}
	return model.FormatTimestamp(t.Add(time.Nanosecond))
}
