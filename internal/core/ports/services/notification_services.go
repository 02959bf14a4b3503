package services

import (
	"context"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/dto"
)

// NotificationDispatcherSvc renders and delivers emails.
type NotificationDispatcherSvc interface {
	// Dispatch sends either a queued record or an inline message. The returned value is
	// the provider's response data. Record mode always records the outcome on the row.
	Dispatch(ctx context.Context, req dto.DispatchRequest) (map[string]any, error)
}

// NotificationQueueSvc records notifications and triggers their delivery.
type NotificationQueueSvc interface {
	// Queue inserts a pending record and returns it.
	Queue(ctx context.Context, record domain.NotificationRecord) (*domain.NotificationRecord, error)
	// QueueAndDispatch queues the record and dispatches it immediately. Delivery
	// failures are logged and recorded on the row but not returned.
	QueueAndDispatch(ctx context.Context, record domain.NotificationRecord) (*domain.NotificationRecord, error)
}

// NotificationLogSvc exposes the email log of an owner's documents.
type NotificationLogSvc interface {
	ListNotifications(ctx context.Context, ownerID string, documentID string) ([]domain.NotificationRecord, error)
	// Resend redispatches an existing record belonging to one of the owner's documents.
	Resend(ctx context.Context, ownerID string, notificationID string) (map[string]any, error)
	// ResendAny redispatches a record without an ownership check. Operator use only.
	ResendAny(ctx context.Context, notificationID string) (map[string]any, error)
}

// NotificationSvcFacade combines all notification-related service interfaces
type NotificationSvcFacade interface {
	NotificationDispatcherSvc
	NotificationQueueSvc
	NotificationLogSvc
}
