package domain

import "time"

// DefaultListLimit caps list queries when the caller does not ask for a page size.
const DefaultListLimit = 100

// MaxListLimit is the largest page size a caller may request.
const MaxListLimit = 500

// DocumentFilter narrows an owner's document listing.
type DocumentFilter struct {
	// Status filters by exact status. Empty means all statuses.
	Status string
	// Search is a case-insensitive substring matched against the searchable fields of the document.
	Search string
	Limit  int
	// After is the keyset cursor: only documents strictly older than (CreatedAt, ID) are returned.
	After *DocumentCursor
}

// DocumentCursor identifies the last row of the previous page.
type DocumentCursor struct {
	CreatedAt time.Time
	ID        string
}

// NormalizedLimit clamps Limit into [1, MaxListLimit], defaulting to DefaultListLimit.
func (f DocumentFilter) NormalizedLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}
