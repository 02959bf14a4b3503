package services

import (
	"context"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/dto"
)

// ProfileReaderSvc defines read operations for owner profiles
type ProfileReaderSvc interface {
	GetProfile(ctx context.Context, profileID string) (*domain.Profile, error)
}

// ProfileWriterSvc defines write operations for owner profiles
type ProfileWriterSvc interface {
	// UpdateProfile changes the settings-page fields of the caller's own profile.
	UpdateProfile(ctx context.Context, profileID string, req dto.UpdateProfileRequest) (*domain.Profile, error)
	UpdateRefreshToken(ctx context.Context, profileID string, refreshTokenHash string, expiresAt time.Time) error
	ClearRefreshToken(ctx context.Context, profileID string) error
}

// ProfileAuthSvc defines sign-up and sign-in operations
type ProfileAuthSvc interface {
	// Register creates a local profile. Returns apperrors.ErrDuplicate if the email is taken.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Profile, error)
	// Authenticate checks email and password. Returns apperrors.ErrUnauthorized on any mismatch.
	Authenticate(ctx context.Context, email, password string) (*domain.Profile, error)
	// FindOrCreateGoogleProfile resolves a verified Google identity to a profile,
	// linking an existing local profile with the same email when there is one.
	FindOrCreateGoogleProfile(ctx context.Context, info domain.GoogleUserInfo) (*domain.Profile, error)
}

// ProfileSvcFacade combines all profile-related service interfaces
type ProfileSvcFacade interface {
	ProfileReaderSvc
	ProfileWriterSvc
	ProfileAuthSvc
}
