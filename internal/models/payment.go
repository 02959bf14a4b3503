package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the row of the append-only payments table.
type Payment struct {
	PaymentID         string          `db:"id"`
	InvoiceID         string          `db:"invoice_id"`
	ExternalPaymentID sql.NullString  `db:"external_payment_id"`
	OrderID           sql.NullString  `db:"order_id"`
	Amount            decimal.Decimal `db:"amount"`
	Currency          string          `db:"currency"`
	Status            string          `db:"status"`
	PaymentMethod     string          `db:"payment_method"`
	ErrorDescription  sql.NullString  `db:"error_description"`
	CreatedAt         time.Time       `db:"created_at"`
}
