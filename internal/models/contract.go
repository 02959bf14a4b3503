package models

import "time"

// Contract is the row of the contracts table.
type Contract struct {
	ContractID      string     `db:"id"`
	UserID          string     `db:"user_id"`
	ClientID        *string    `db:"client_id"`
	Status          string     `db:"status"`
	Title           string     `db:"title"`
	Description     string     `db:"description"`
	Content         string     `db:"content"`
	Terms           string     `db:"terms"`
	ShareToken      string     `db:"share_token"`
	SignedDate      *time.Time `db:"signed_date"`
	SignatureName   *string    `db:"signature_name"`
	RejectionReason *string    `db:"rejection_reason"`
	RejectionDate   *time.Time `db:"rejection_date"`
	Timestamps
}
