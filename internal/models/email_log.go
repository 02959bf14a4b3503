package models

import "time"

// EmailLog is the row of the email_logs table.
type EmailLog struct {
	ID             string     `db:"id"`
	InvoiceID      *string    `db:"invoice_id"`
	ContractID     *string    `db:"contract_id"`
	RecipientEmail string     `db:"recipient_email"`
	EmailType      string     `db:"email_type"`
	Subject        string     `db:"subject"`
	Status         string     `db:"status"`
	ErrorMessage   *string    `db:"error_message"`
	SentAt         *time.Time `db:"sent_at"`
	CreatedAt      time.Time  `db:"created_at"`
}
