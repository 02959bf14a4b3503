package dto

import "time"

// RegisterRequest is the email/password sign-up payload.
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FirstName    string `json:"firstName" binding:"max=100"`
	LastName     string `json:"lastName" binding:"max=100"`
	BusinessName string `json:"businessName" binding:"max=200"`
}

// LoginRequest is the email/password sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Profile   ProfileResponse `json:"profile"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ExchangeCodeRequest carries the authorization code the frontend received on the OAuth redirect.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
