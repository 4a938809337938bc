// Package view derives the visible, ordered item list from the full
// collection plus a filter and sort choice. Everything here is pure: safe to
// call on every render, deterministic for identical inputs.
package view

import (
	"sort"
	"strings"

	"wishlist-cli/internal/model"
)

// Derive filters and sorts items. The input slice is never modified.
//
// Filters are an AND of independent predicates. Items without a desiredDate
// are excluded once any date bound is set: the bound comparison requires a
// present date.
func Derive(items []model.WishlistItem, f model.Filter, s model.Sort) []model.WishlistItem {
	out := make([]model.WishlistItem, 0, len(items))
	for _, it := range items {
		if matches(it, f) {
			out = append(out, it)
		}
	}

	cmp := comparator(s.Field)
	desc := s.Order == model.SortDesc
	// Stable sort: ties keep input order. Descending negates the comparison
	// sign, not the final slice, so stability still favors input order.
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func matches(it model.WishlistItem, f model.Filter) bool {
	if len(f.Statuses) > 0 && !f.HasStatus(it.Status) {
		return false
	}
	if f.MinPrice != nil && it.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && it.Price > *f.MaxPrice {
		return false
	}
	if f.DateFrom != "" && (it.DesiredDate == "" || it.DesiredDate < f.DateFrom) {
		return false
	}
	if f.DateTo != "" && (it.DesiredDate == "" || it.DesiredDate > f.DateTo) {
		return false
	}
	return true
}

// comparator returns a three-way compare for the given field. Missing string
// values compare as empty (sort first ascending); ISO-8601 strings compare
// chronologically as text.
func comparator(field model.SortField) func(a, b model.WishlistItem) int {
	switch field {
	case model.SortByTitle:
		return func(a, b model.WishlistItem) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case model.SortByPrice:
		return func(a, b model.WishlistItem) int {
			switch {
			case a.Price < b.Price:
				return -1
			case a.Price > b.Price:
				return 1
			default:
				return 0
			}
		}
	case model.SortByDesiredDate:
		return func(a, b model.WishlistItem) int {
			return strings.Compare(a.DesiredDate, b.DesiredDate)
		}
	default: // createdAt
		return func(a, b model.WishlistItem) int {
			return strings.Compare(a.CreatedAt, b.CreatedAt)
		}
	}
}

// PlannedTotal sums the price of planned items in an already-derived view.
func PlannedTotal(items []model.WishlistItem) float64 {
	var sum float64
	for _, it := range items {
		if it.Status == model.StatusPlanned {
			sum += it.Price
		}
	}
	return sum
}
