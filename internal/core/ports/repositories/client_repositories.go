package repositories

import (
	"context"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
)

// ClientReader defines read operations for client data. Every call is scoped to one owner.
type ClientReader interface {
	FindClientByID(ctx context.Context, ownerID string, clientID string) (*domain.Client, error)

	// FindClientByEmail matches email exactly (case-sensitive). Callers must not pass an empty email.
	FindClientByEmail(ctx context.Context, ownerID string, email string) (*domain.Client, error)

	// ListClients returns the owner's clients ordered by name, optionally filtered by a
	// case-insensitive substring of name or email.
	ListClients(ctx context.Context, ownerID string, search string) ([]domain.Client, error)

	CountClients(ctx context.Context, ownerID string) (int, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	SaveClient(ctx context.Context, client domain.Client) error
	UpdateClient(ctx context.Context, client domain.Client) error
	// DeleteClient hard deletes the client. Documents referencing it keep existing with no client.
	DeleteClient(ctx context.Context, ownerID string, clientID string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
