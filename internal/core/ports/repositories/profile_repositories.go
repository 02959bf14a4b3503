package repositories

import (
	"context"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
)

// ProfileReader defines read operations for profile data
type ProfileReader interface {
	// FindProfileByID retrieves a profile by its id. Returns apperrors.ErrNotFound if missing.
	FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error)

	// FindProfileByEmail retrieves a profile by its (case-insensitive) email.
	FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error)

	// FindProfileByProvider retrieves a profile linked to an external identity.
	FindProfileByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.Profile, error)
}

// ProfileWriter defines write operations for profile data
type ProfileWriter interface {
	// SaveProfile inserts a new profile. Returns apperrors.ErrDuplicate if the email is taken.
	SaveProfile(ctx context.Context, profile domain.Profile) error

	// UpdateProfile updates the editable details (names, business name) and identity links.
	UpdateProfile(ctx context.Context, profile domain.Profile) error

	// UpdateRefreshToken stores (or clears, when hash is empty) the refresh token hash.
	UpdateRefreshToken(ctx context.Context, profileID string, hash string, expiresAt *time.Time) error
}

// ProfileRepositoryFacade combines all profile-related repository interfaces
type ProfileRepositoryFacade interface {
	ProfileReader
	ProfileWriter
}
