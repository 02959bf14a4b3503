package services

import (
	"context"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/dto"
)

// InvoiceReaderSvc defines owner-scoped reads of invoices
type InvoiceReaderSvc interface {
	GetInvoice(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error)
	// ListInvoices returns a page of invoices and the token of the next page, if any.
	ListInvoices(ctx context.Context, ownerID string, params dto.ListDocumentsParams) ([]domain.Invoice, *string, error)
	// ShareLink returns the public URL of an owned invoice.
	ShareLink(ctx context.Context, ownerID string, invoiceID string) (string, error)
}

// InvoiceWriterSvc defines the issuer operations on invoices
type InvoiceWriterSvc interface {
	CreateInvoice(ctx context.Context, ownerID string, req dto.InvoiceRequest) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, ownerID string, invoiceID string, req dto.InvoiceRequest) (*domain.Invoice, error)
	// SendInvoice moves a draft to pending and emails the client.
	SendInvoice(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error)
	DuplicateInvoice(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, ownerID string, invoiceID string) error
	// MarkOverdue flips the owner's outstanding invoices that are past due to overdue.
	MarkOverdue(ctx context.Context, ownerID string) (int64, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
