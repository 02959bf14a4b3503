package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the outcome of one checkout attempt.
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// DefaultPaymentMethod is recorded when the checkout callback does not say.
const DefaultPaymentMethod = "razorpay"

// Payment is an append-only record of a checkout attempt against an invoice.
type Payment struct {
	PaymentID         string          `json:"id"`
	InvoiceID         string          `json:"invoiceId"`
	ExternalPaymentID string          `json:"externalPaymentId"`
	OrderID           string          `json:"orderId,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          CurrencyCode    `json:"currency"`
	Status            PaymentStatus   `json:"status"`
	PaymentMethod     string          `json:"paymentMethod"`
	ErrorDescription  string          `json:"errorDescription,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// MinorUnits converts amount to the smallest currency unit expected by the checkout widget.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CheckoutDetails is what the checkout widget needs to open for an invoice.
type CheckoutDetails struct {
	KeyID         string
	InvoiceID     string
	InvoiceNumber string
	Amount        decimal.Decimal
	AmountMinor   int64
	Currency      CurrencyCode
	MerchantName  string
	PrefillName   string
	PrefillEmail  string
}
