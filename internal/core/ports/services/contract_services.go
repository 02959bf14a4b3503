package services

import (
	"context"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/dto"
)

// ContractReaderSvc defines owner-scoped reads of contracts
type ContractReaderSvc interface {
	GetContract(ctx context.Context, ownerID string, contractID string) (*domain.Contract, error)
	ListContracts(ctx context.Context, ownerID string, params dto.ListDocumentsParams) ([]domain.Contract, *string, error)
	ShareLink(ctx context.Context, ownerID string, contractID string) (string, error)
}

// ContractWriterSvc defines the issuer operations on contracts
type ContractWriterSvc interface {
	CreateContract(ctx context.Context, ownerID string, req dto.ContractRequest) (*domain.Contract, error)
	UpdateContract(ctx context.Context, ownerID string, contractID string, req dto.ContractRequest) (*domain.Contract, error)
	// SendContract moves a draft or rejected contract to sent and emails the client.
	SendContract(ctx context.Context, ownerID string, contractID string) (*domain.Contract, error)
	DuplicateContract(ctx context.Context, ownerID string, contractID string) (*domain.Contract, error)
	DeleteContract(ctx context.Context, ownerID string, contractID string) error
}

// ContractSvcFacade combines all contract-related service interfaces
type ContractSvcFacade interface {
	ContractReaderSvc
	ContractWriterSvc
}
