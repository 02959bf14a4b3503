package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/core/ports/gateways"
	"github.com/resend/resend-go/v2"
)

// ErrNotConfigured is returned by Send when no API key was supplied.
var ErrNotConfigured = errors.New("email provider is not configured")

// emailsAPI is the part of the Resend client the sender uses.
type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender delivers notification emails through Resend.
type ResendSender struct {
	emails emailsAPI
}

var _ gateways.EmailSender = (*ResendSender)(nil)

// NewResendSender creates a sender for apiKey. An empty key yields a sender whose
// every Send fails, so notifications get marked failed instead of the server refusing to start.
func NewResendSender(apiKey string) *ResendSender {
	if apiKey == "" {
		return &ResendSender{}
	}
	return &ResendSender{emails: resend.NewClient(apiKey).Emails}
}

func (s *ResendSender) Send(ctx context.Context, msg domain.EmailMessage) (string, error) {
	if s.emails == nil {
		return "", ErrNotConfigured
	}
	sent, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}
