package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one element of the invoices.items JSONB array.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// Invoice is the row of the invoices table.
type Invoice struct {
	InvoiceID       string          `db:"id"`
	UserID          string          `db:"user_id"`
	ClientID        *string         `db:"client_id"`
	Status          string          `db:"status"`
	Amount          decimal.Decimal `db:"amount"`
	TaxRate         decimal.Decimal `db:"tax_rate"`
	Currency        string          `db:"currency"`
	DueDate         *time.Time      `db:"due_date"`
	Items           []LineItem      `db:"items"`
	Notes           string          `db:"notes"`
	ShareToken      string          `db:"share_token"`
	ApprovedDate    *time.Time      `db:"approved_date"`
	RejectionReason *string         `db:"rejection_reason"`
	RejectionDate   *time.Time      `db:"rejection_date"`
	Timestamps
}
