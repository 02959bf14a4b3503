package models

import "time"

// Timestamps are the audit columns shared by every mutable table.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
