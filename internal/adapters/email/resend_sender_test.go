package email

import (
	"context"
	"errors"
	"testing"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEmails struct {
	mock.Mock
}

func (m *mockEmails) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.SendEmailResponse), args.Error(1)
}

func TestResendSender_NotConfigured(t *testing.T) {
	sender := NewResendSender("")

	_, err := sender.Send(context.Background(), domain.EmailMessage{To: "a@example.com"})

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestResendSender_Send(t *testing.T) {
	ctx := context.Background()
	emails := new(mockEmails)
	sender := &ResendSender{emails: emails}
	msg := domain.EmailMessage{From: "Dustbill <no-reply@dustbill.com>", To: "client@example.com", Subject: "Hi", HTML: "<p>hi</p>"}

	emails.On("SendWithContext", ctx, mock.MatchedBy(func(req *resend.SendEmailRequest) bool {
		return req.From == msg.From && len(req.To) == 1 && req.To[0] == msg.To && req.Html == msg.HTML
	})).Return(&resend.SendEmailResponse{Id: "re_123"}, nil).Once()

	id, err := sender.Send(ctx, msg)

	require.NoError(t, err)
	assert.Equal(t, "re_123", id)
	emails.AssertExpectations(t)
}

func TestResendSender_ProviderError(t *testing.T) {
	ctx := context.Background()
	emails := new(mockEmails)
	sender := &ResendSender{emails: emails}
	providerErr := errors.New("domain not verified")

	emails.On("SendWithContext", ctx, mock.Anything).Return(nil, providerErr).Once()

	_, err := sender.Send(ctx, domain.EmailMessage{To: "client@example.com"})

	assert.ErrorIs(t, err, providerErr)
	assert.Contains(t, err.Error(), "domain not verified")
}
