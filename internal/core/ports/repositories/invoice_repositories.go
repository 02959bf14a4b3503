package repositories

import (
	"context"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data.
// Returned invoices carry their joined Client when one is linked.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice owned by ownerID.
	FindInvoiceByID(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByShareToken resolves an invoice for unauthenticated access.
	FindInvoiceByShareToken(ctx context.Context, shareToken string) (*domain.Invoice, error)

	// ListInvoices returns the owner's invoices newest first.
	// Search matches client name or invoice id.
	ListInvoices(ctx context.Context, ownerID string, filter domain.DocumentFilter) ([]domain.Invoice, error)

	// SumInvoicesByMonth totals every invoice of the owner grouped by status and creation month.
	SumInvoicesByMonth(ctx context.Context, ownerID string) ([]domain.InvoiceTotal, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice inserts a new invoice.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice overwrites the content fields and status of an owned invoice.
	// The share token is never updated.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceStatus persists the status and its date/reason stamps, but only when the
	// stored status is one of allowedFrom. Returns apperrors.ErrInvalidTransition otherwise.
	UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice, allowedFrom []domain.InvoiceStatus) error

	DeleteInvoice(ctx context.Context, ownerID string, invoiceID string) error

	// MarkOverdueInvoices flips the owner's pending/approved invoices due before asOf to overdue.
	MarkOverdueInvoices(ctx context.Context, ownerID string, asOf time.Time) (int64, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
