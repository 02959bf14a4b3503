package repositories

import (
	"context"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment appends a payment attempt.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// SaveSuccessfulPayment appends a success row and flips the invoice to paid in one
	// database transaction. The invoice must currently be in one of allowedFrom.
	SaveSuccessfulPayment(ctx context.Context, payment domain.Payment, allowedFrom []domain.InvoiceStatus) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
