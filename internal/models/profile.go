package models

import (
	"database/sql"
	"time"
)

// Profile is the row of the profiles table.
type Profile struct {
	ProfileID      string         `db:"id"`
	FirstName      string         `db:"first_name"`
	LastName       string         `db:"last_name"`
	BusinessName   string         `db:"business_name"`
	Email          string         `db:"email"`
	PasswordHash   sql.NullString `db:"password_hash"` // NULL for Google-only accounts
	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
	EmailVerified  bool           `db:"email_verified"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time     `db:"refresh_token_expiry_time"`
	Timestamps
}
