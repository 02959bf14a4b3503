package domain

import "github.com/google/uuid"

// NewShareToken mints an unguessable token addressing one document for unauthenticated access.
func NewShareToken() string {
	return uuid.NewString()
}
