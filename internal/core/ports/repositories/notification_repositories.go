package repositories

import (
	"context"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
)

// NotificationReader defines read operations for the email log
type NotificationReader interface {
	// FindNotificationContext loads a record with its document, client and owner profile.
	FindNotificationContext(ctx context.Context, notificationID string) (*domain.NotificationContext, error)

	// ListNotificationsByDocument returns the records of one invoice or contract, newest first.
	ListNotificationsByDocument(ctx context.Context, documentID string) ([]domain.NotificationRecord, error)
}

// NotificationWriter defines write operations for the email log
type NotificationWriter interface {
	SaveNotification(ctx context.Context, record domain.NotificationRecord) error

	// UpdateNotificationStatus records the delivery outcome.
	UpdateNotificationStatus(ctx context.Context, notificationID string, status domain.NotificationStatus, sentAt time.Time, errorMessage *string) error
}

// NotificationRepositoryFacade combines all notification-related repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
