package services

import (
	"context"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/dto"
)

// ClientReaderSvc defines read operations for client records
type ClientReaderSvc interface {
	GetClient(ctx context.Context, ownerID string, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, ownerID string, params dto.ListClientsParams) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client records
type ClientWriterSvc interface {
	CreateClient(ctx context.Context, ownerID string, req dto.CreateClientRequest) (*domain.Client, error)
	UpdateClient(ctx context.Context, ownerID string, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, ownerID string, clientID string) error
}

// ClientResolverSvc finds or creates the client a document is addressed to.
type ClientResolverSvc interface {
	// ResolveClient returns the owner's client referenced by clientID, or matched by exact
	// email (contact fields overwritten), or newly created. Returns nil when neither an id
	// nor an email was supplied and name is empty.
	ResolveClient(ctx context.Context, ownerID string, clientID *string, contact domain.Client) (*domain.Client, error)
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
	ClientResolverSvc
}
