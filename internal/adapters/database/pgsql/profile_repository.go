package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	"github.com/dustbill/dustbill_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProfileRepository struct {
	BaseRepository
}

func newPgxProfileRepository(pool *pgxpool.Pool) portsrepo.ProfileRepositoryFacade {
	return &PgxProfileRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProfileRepositoryFacade = (*PgxProfileRepository)(nil)

const profileColumns = `id, first_name, last_name, business_name, email, password_hash,
	auth_provider, provider_user_id, email_verified, refresh_token_hash, refresh_token_expiry_time,
	created_at, updated_at`

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toModelProfile(d domain.Profile) models.Profile {
	return models.Profile{
		ProfileID:              d.ProfileID,
		FirstName:              d.FirstName,
		LastName:               d.LastName,
		BusinessName:           d.BusinessName,
		Email:                  d.Email,
		PasswordHash:           nullString(d.PasswordHash),
		AuthProvider:           string(d.AuthProvider),
		ProviderUserID:         nullString(d.ProviderUserID),
		EmailVerified:          d.EmailVerified,
		RefreshTokenHash:       nullString(d.RefreshTokenHash),
		RefreshTokenExpiryTime: d.RefreshTokenExpiryTime,
		Timestamps:             models.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

func toDomainProfile(m models.Profile) domain.Profile {
	return domain.Profile{
		ProfileID:              m.ProfileID,
		FirstName:              m.FirstName,
		LastName:               m.LastName,
		BusinessName:           m.BusinessName,
		Email:                  m.Email,
		PasswordHash:           m.PasswordHash.String,
		AuthProvider:           domain.AuthProvider(m.AuthProvider),
		ProviderUserID:         m.ProviderUserID.String,
		EmailVerified:          m.EmailVerified,
		RefreshTokenHash:       m.RefreshTokenHash.String,
		RefreshTokenExpiryTime: m.RefreshTokenExpiryTime,
		Timestamps:             domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var m models.Profile
	err := row.Scan(
		&m.ProfileID,
		&m.FirstName,
		&m.LastName,
		&m.BusinessName,
		&m.Email,
		&m.PasswordHash,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.EmailVerified,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d := toDomainProfile(m)
	return &d, nil
}

func (r *PgxProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1;`
	profile, err := scanProfile(r.Pool.QueryRow(ctx, query, profileID))
	if err != nil {
		return nil, mapError(err, "failed to find profile by ID "+profileID)
	}
	return profile, nil
}

func (r *PgxProfileRepository) FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email) = lower($1);`
	profile, err := scanProfile(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, mapError(err, "failed to find profile by email")
	}
	return profile, nil
}

func (r *PgxProfileRepository) FindProfileByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE auth_provider = $1 AND provider_user_id = $2;`
	profile, err := scanProfile(r.Pool.QueryRow(ctx, query, string(provider), providerUserID))
	if err != nil {
		return nil, mapError(err, "failed to find profile by provider")
	}
	return profile, nil
}

func (r *PgxProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	m := toModelProfile(profile)
	query := `
		INSERT INTO profiles (id, first_name, last_name, business_name, email, password_hash,
			auth_provider, provider_user_id, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProfileID,
		m.FirstName,
		m.LastName,
		m.BusinessName,
		m.Email,
		m.PasswordHash,
		m.AuthProvider,
		m.ProviderUserID,
		m.EmailVerified,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return mapError(err, "failed to save profile")
}

func (r *PgxProfileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	m := toModelProfile(profile)
	query := `
		UPDATE profiles
		SET first_name = $1, last_name = $2, business_name = $3,
			auth_provider = $4, provider_user_id = $5, email_verified = $6, updated_at = $7
		WHERE id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.FirstName,
		m.LastName,
		m.BusinessName,
		m.AuthProvider,
		m.ProviderUserID,
		m.EmailVerified,
		m.UpdatedAt,
		m.ProfileID,
	)
	if err != nil {
		return mapError(err, "failed to update profile")
	}
	return requireRow(tag, "profile")
}

func (r *PgxProfileRepository) UpdateRefreshToken(ctx context.Context, profileID string, hash string, expiresAt *time.Time) error {
	query := `
		UPDATE profiles
		SET refresh_token_hash = $1, refresh_token_expiry_time = $2, updated_at = NOW()
		WHERE id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, nullString(hash), expiresAt, profileID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for profile %s: %w", profileID, err)
	}
	return requireRow(tag, "profile")
}
