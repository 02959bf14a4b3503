package services

import (
	"context"
	"log/slog"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/core/ports/gateways"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/utils"
)

// lifecycleHooks are the side effects that follow a persisted document status change.
// Every hook is optional.
type lifecycleHooks struct {
	notifier  portssvc.NotificationQueueSvc
	publisher gateways.EventPublisher
	analytics *utils.PosthogClientWrapper
}

// LifecycleOption configures the side effects of the document services.
type LifecycleOption func(*lifecycleHooks)

// WithNotifier queues and dispatches the email of each status change.
func WithNotifier(n portssvc.NotificationQueueSvc) LifecycleOption {
	return func(h *lifecycleHooks) { h.notifier = n }
}

// WithEventPublisher publishes a DocumentEvent for each status change.
func WithEventPublisher(p gateways.EventPublisher) LifecycleOption {
	return func(h *lifecycleHooks) { h.publisher = p }
}

// WithAnalytics records a product analytics event for each status change.
func WithAnalytics(a *utils.PosthogClientWrapper) LifecycleOption {
	return func(h *lifecycleHooks) { h.analytics = a }
}

func newLifecycleHooks(options []LifecycleOption) lifecycleHooks {
	var h lifecycleHooks
	for _, option := range options {
		option(&h)
	}
	return h
}

// statusChange describes what happened to a document after it was saved.
type statusChange struct {
	notification   *domain.NotificationRecord
	event          domain.DocumentEvent
	analyticsEvent string
	properties     map[string]any
}

// afterTransition runs the hooks of change. Failures are logged, never returned:
// the document write has already succeeded.
func (s *BaseService) afterTransition(ctx context.Context, hooks lifecycleHooks, change statusChange) {
	if change.notification != nil && hooks.notifier != nil {
		record, err := hooks.notifier.QueueAndDispatch(ctx, *change.notification)
		if err != nil {
			s.LogError(ctx, err, "Failed to queue notification",
				slog.String("email_type", string(change.notification.EmailType)),
				slog.String("document_id", change.event.DocumentID))
		} else if record.Status == domain.NotificationFailed {
			s.LogInfo(ctx, "Notification recorded as failed",
				slog.String("notification_id", record.NotificationID))
		}
	}
	if change.event.Type != "" {
		s.publish(ctx, hooks.publisher, change.event)
	}
	if change.analyticsEvent != "" {
		hooks.analytics.Enqueue(change.event.OwnerID, change.analyticsEvent, change.properties)
	}
}

func invoiceNotification(inv *domain.Invoice, emailType domain.EmailType, recipient string) *domain.NotificationRecord {
	id := inv.InvoiceID
	return &domain.NotificationRecord{
		InvoiceID:      &id,
		RecipientEmail: recipient,
		EmailType:      emailType,
		Subject:        domain.SubjectFor(emailType, inv, nil),
	}
}

func contractNotification(c *domain.Contract, emailType domain.EmailType, recipient string) *domain.NotificationRecord {
	id := c.ContractID
	return &domain.NotificationRecord{
		ContractID:     &id,
		RecipientEmail: recipient,
		EmailType:      emailType,
		Subject:        domain.SubjectFor(emailType, nil, c),
	}
}
