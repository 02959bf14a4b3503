package gateways

import (
	"context"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
)

// EmailSender delivers a rendered email through the configured provider.
type EmailSender interface {
	// Send returns the provider's message id on success.
	Send(ctx context.Context, msg domain.EmailMessage) (string, error)
}

// EventPublisher announces persisted document lifecycle changes to other systems.
// Publishing is best effort; callers log and continue on error.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.DocumentEvent) error
}
