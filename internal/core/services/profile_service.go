package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/dustbill/dustbill_backend/internal/utils"
	"github.com/google/uuid"
)

type profileService struct {
	BaseService
	profileRepo portsrepo.ProfileRepositoryFacade
}

// NewProfileService creates a new profile service.
func NewProfileService(repo portsrepo.ProfileRepositoryFacade) portssvc.ProfileSvcFacade {
	return &profileService{profileRepo: repo}
}

var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

func (s *profileService) GetProfile(ctx context.Context, profileID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get profile", slog.String("profile_id", profileID))
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, profileID string, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := s.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	changed := false
	apply := func(dst *string, src *string) {
		if src == nil {
			return
		}
		v := strings.TrimSpace(*src)
		if v != *dst {
			*dst = v
			changed = true
		}
	}
	apply(&profile.FirstName, req.FirstName)
	apply(&profile.LastName, req.LastName)
	apply(&profile.BusinessName, req.BusinessName)

	if !changed {
		return profile, nil
	}

	profile.Touch(s.Now())
	if err := s.profileRepo.UpdateProfile(ctx, *profile); err != nil {
		s.LogError(ctx, err, "Failed to update profile", slog.String("profile_id", profileID))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) UpdateRefreshToken(ctx context.Context, profileID string, refreshTokenHash string, expiresAt time.Time) error {
	if err := s.profileRepo.UpdateRefreshToken(ctx, profileID, refreshTokenHash, &expiresAt); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("profile_id", profileID))
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *profileService) ClearRefreshToken(ctx context.Context, profileID string) error {
	if err := s.profileRepo.UpdateRefreshToken(ctx, profileID, "", nil); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("profile_id", profileID))
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

func (s *profileService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Profile, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, apperrors.ValidationError("Email is required.")
	}

	if _, err := s.profileRepo.FindProfileByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("profile with email %s: %w", email, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing profile")
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	profile := domain.Profile{
		ProfileID:    uuid.NewString(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		BusinessName: strings.TrimSpace(req.BusinessName),
		Email:        email,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.profileRepo.SaveProfile(ctx, profile); err != nil {
		s.LogError(ctx, err, "Failed to save profile")
		return nil, fmt.Errorf("failed to register profile: %w", err)
	}

	s.LogInfo(ctx, "Profile registered", slog.String("profile_id", profile.ProfileID))
	return &profile, nil
}

func (s *profileService) Authenticate(ctx context.Context, email, password string) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up profile for login")
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if !utils.CheckPasswordHash(password, profile.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return profile, nil
}

func (s *profileService) FindOrCreateGoogleProfile(ctx context.Context, info domain.GoogleUserInfo) (*domain.Profile, error) {
	if info.ID == "" || info.Email == "" {
		return nil, apperrors.NewBadRequestError("Essential user information missing from Google token.")
	}

	profile, err := s.profileRepo.FindProfileByProvider(ctx, domain.ProviderGoogle, info.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up profile by provider", slog.String("provider_user_id", info.ID))
		return nil, fmt.Errorf("failed to look up google profile: %w", err)
	}

	email := normalizeEmail(info.Email)
	now := s.Now()

	existing, err := s.profileRepo.FindProfileByEmail(ctx, email)
	switch {
	case err == nil:
		// Linking is only safe when Google vouches for the address.
		if !info.VerifiedEmail {
			s.LogInfo(ctx, "Refused to link unverified google email", slog.String("profile_id", existing.ProfileID))
			return nil, apperrors.NewAppError(http.StatusConflict,
				"An account with this email already exists. Please sign in with your password.", apperrors.ErrDuplicate)
		}
		existing.AuthProvider = domain.ProviderGoogle
		existing.ProviderUserID = info.ID
		existing.EmailVerified = true
		existing.Touch(now)
		if err := s.profileRepo.UpdateProfile(ctx, *existing); err != nil {
			s.LogError(ctx, err, "Failed to link google identity", slog.String("profile_id", existing.ProfileID))
			return nil, fmt.Errorf("failed to link google identity: %w", err)
		}
		s.LogInfo(ctx, "Linked google identity to existing profile", slog.String("profile_id", existing.ProfileID))
		return existing, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up profile by email")
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	profile = &domain.Profile{
		ProfileID:      uuid.NewString(),
		FirstName:      info.GivenName,
		LastName:       info.FamilyName,
		Email:          email,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: info.ID,
		EmailVerified:  info.VerifiedEmail,
		Timestamps:     domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if profile.FirstName == "" && profile.LastName == "" {
		profile.FirstName = info.Name
	}
	if err := s.profileRepo.SaveProfile(ctx, *profile); err != nil {
		s.LogError(ctx, err, "Failed to create google profile")
		return nil, fmt.Errorf("failed to create google profile: %w", err)
	}
	s.LogInfo(ctx, "Profile created from google sign-in", slog.String("profile_id", profile.ProfileID))
	return profile, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
