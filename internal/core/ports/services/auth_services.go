package services

import (
	"context"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, profile *domain.Profile) (string, time.Time, error)
	// GenerateRefreshToken returns a raw refresh token. Only its hash may be persisted.
	GenerateRefreshToken(ctx context.Context, profile *domain.Profile) (string, time.Time, error)
	// ValidateAndParseRefreshToken validates a refresh token string against a profile's stored token details.
	// It returns the profile if the token is valid and not expired.
	ValidateAndParseRefreshToken(ctx context.Context, profileID string, refreshTokenString string) (*domain.Profile, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
