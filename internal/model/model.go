package model

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPlanned   Status = "planned"
	StatusPurchased Status = "purchased"
	StatusPostponed Status = "postponed"
)

// KnownStatuses is the fixed lifecycle set, in display order.
var KnownStatuses = []Status{StatusPlanned, StatusPurchased, StatusPostponed}

func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "planned":
		return StatusPlanned, nil
	case "purchased":
		return StatusPurchased, nil
	case "postponed":
		return StatusPostponed, nil
	default:
		return "", fmt.Errorf("invalid status: %q (expected planned|purchased|postponed)", s)
	}
}

// WishlistItem is one desired purchase.
//
// CreatedAt/UpdatedAt are RFC 3339 UTC timestamps and DesiredDate is a
// YYYY-MM-DD calendar date. They stay strings on purpose: ISO-8601 sorts
// chronologically as text, so the view comparator never parses them.
type WishlistItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	URL         string  `json:"url,omitempty"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
	DesiredDate string  `json:"desiredDate,omitempty"`
	Status      Status  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// Draft is the user-editable field set: everything except id and timestamps.
type Draft struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	URL         string  `json:"url,omitempty"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
	DesiredDate string  `json:"desiredDate,omitempty"`
	Status      Status  `json:"status"`
}

type SortField string

const (
	SortByTitle       SortField = "title"
	SortByPrice       SortField = "price"
	SortByDesiredDate SortField = "desiredDate"
	SortByCreatedAt   SortField = "createdAt"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type Sort struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// DefaultSort is newest-first, matching the initial UI state.
func DefaultSort() Sort {
	return Sort{Field: SortByCreatedAt, Order: SortDesc}
}

func ParseSortField(s string) (SortField, error) {
	switch strings.TrimSpace(s) {
	case "title":
		return SortByTitle, nil
	case "price":
		return SortByPrice, nil
	case "desiredDate", "date":
		return SortByDesiredDate, nil
	case "createdAt", "created":
		return SortByCreatedAt, nil
	default:
		return "", fmt.Errorf("invalid sort field: %q (expected title|price|desiredDate|createdAt)", s)
	}
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	default:
		return "", fmt.Errorf("invalid sort order: %q (expected asc|desc)", s)
	}
}

// Filter narrows the visible item set. All fields are optional; price bounds
// use pointers to distinguish "not set" from zero. Bounds are inclusive.
// An empty Statuses set means no status filtering at all.
type Filter struct {
	Statuses []Status `json:"status,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	DateFrom string   `json:"dateFrom,omitempty"`
	DateTo   string   `json:"dateTo,omitempty"`
}

func (f Filter) HasStatus(s Status) bool {
	for _, st := range f.Statuses {
		if st == s {
			return true
		}
	}
	return false
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// timestampLayout is RFC 3339 with a fixed-width 9-digit fraction. The fixed
// width matters: trailing-zero-trimmed fractions (time.RFC3339Nano) do not
// sort chronologically as text, and the view comparator compares these
// strings directly.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// Now returns the current UTC time as a lexicographically sortable RFC 3339
// timestamp.
func Now() string {
	return time.Now().UTC().Format(timestampLayout)
}

// ParseTimestamp parses a timestamp produced by Now.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// FormatTimestamp renders t in the store's timestamp layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Event is one entry in the local append-only audit log.
type Event struct {
	ID       string `json:"id"`
	TS       string `json:"ts"`
	Type     string `json:"type"`
	EntityID string `json:"entityId"`
	Payload  any    `json:"payload,omitempty"`
}
