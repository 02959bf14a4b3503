package services

import (
	"context"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
)

// PublicInvoiceSvc defines what a share-link holder can do with an invoice.
type PublicInvoiceSvc interface {
	ViewInvoice(ctx context.Context, shareToken string, session domain.Session) (*domain.PublicInvoice, error)
	// ApproveInvoice moves pending to approved and returns the checkout details for payment.
	ApproveInvoice(ctx context.Context, shareToken string, session domain.Session) (*domain.Invoice, *domain.CheckoutDetails, error)
	RejectInvoice(ctx context.Context, shareToken string, reason string, session domain.Session) (*domain.Invoice, error)
}

// PublicContractSvc defines what a share-link holder can do with a contract.
type PublicContractSvc interface {
	ViewContract(ctx context.Context, shareToken string, session domain.Session) (*domain.PublicContract, error)
	AcceptContract(ctx context.Context, shareToken string, signatureName string, session domain.Session) (*domain.Contract, error)
	RejectContract(ctx context.Context, shareToken string, reason string, session domain.Session) (*domain.Contract, error)
}

// PublicDocumentSvcFacade combines the public viewer operations
type PublicDocumentSvcFacade interface {
	PublicInvoiceSvc
	PublicContractSvc
}
