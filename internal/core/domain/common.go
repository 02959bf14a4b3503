package domain

import "time"

// Timestamps holds the creation and last-modification times shared by persisted entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Touch sets UpdatedAt, and CreatedAt when it is still zero.
func (t *Timestamps) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

// ShortID returns the first eight characters of an id, used as a human facing document number.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
