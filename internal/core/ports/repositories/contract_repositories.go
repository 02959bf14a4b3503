package repositories

import (
	"context"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
)

// ContractReader defines read operations for contract data.
type ContractReader interface {
	FindContractByID(ctx context.Context, ownerID string, contractID string) (*domain.Contract, error)
	FindContractByShareToken(ctx context.Context, shareToken string) (*domain.Contract, error)

	// ListContracts returns the owner's contracts newest first.
	// Search matches title or client name.
	ListContracts(ctx context.Context, ownerID string, filter domain.DocumentFilter) ([]domain.Contract, error)

	CountContractsByStatus(ctx context.Context, ownerID string) (map[domain.ContractStatus]int, error)
}

// ContractWriter defines write operations for contract data
type ContractWriter interface {
	SaveContract(ctx context.Context, contract domain.Contract) error
	UpdateContract(ctx context.Context, contract domain.Contract) error

	// UpdateContractStatus behaves like InvoiceWriter.UpdateInvoiceStatus.
	UpdateContractStatus(ctx context.Context, contract domain.Contract, allowedFrom []domain.ContractStatus) error

	DeleteContract(ctx context.Context, ownerID string, contractID string) error
}

// ContractRepositoryFacade combines all contract-related repository interfaces
type ContractRepositoryFacade interface {
	ContractReader
	ContractWriter
}
