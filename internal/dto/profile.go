package dto

import (
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
)

// ProfileResponse is the owner's account as returned by the API.
type ProfileResponse struct {
	ID           string              `json:"id"`
	Email        string              `json:"email"`
	FirstName    string              `json:"firstName"`
	LastName     string              `json:"lastName"`
	BusinessName string              `json:"businessName"`
	AuthProvider domain.AuthProvider `json:"authProvider"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// UpdateProfileRequest defines the data allowed for updating a profile.
// Pointers distinguish omitted fields from empty values.
type UpdateProfileRequest struct {
	FirstName    *string `json:"firstName" binding:"omitempty,max=100"`
	LastName     *string `json:"lastName" binding:"omitempty,max=100"`
	BusinessName *string `json:"businessName" binding:"omitempty,max=200"`
}

func ToProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:           p.ProfileID,
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		BusinessName: p.BusinessName,
		AuthProvider: p.AuthProvider,
		CreatedAt:    p.CreatedAt,
	}
}
