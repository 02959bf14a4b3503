package dto

import (
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
)

// DispatchRequest invokes the notification dispatcher either for a queued record
// or with an inline message.
type DispatchRequest struct {
	NotificationRecordID string `json:"notificationRecordId" binding:"omitempty,uuid"`
	To                   string `json:"to" binding:"omitempty,email"`
	Subject              string `json:"subject"`
	HTML                 string `json:"html"`
	From                 string `json:"from"`
}

// DispatchResponse is the dispatcher's outcome.
type DispatchResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NotificationResponse defines the data returned for an email log row.
type NotificationResponse struct {
	ID             string                    `json:"id"`
	InvoiceID      *string                   `json:"invoiceId,omitempty"`
	ContractID     *string                   `json:"contractId,omitempty"`
	RecipientEmail string                    `json:"recipientEmail"`
	EmailType      domain.EmailType          `json:"emailType"`
	Subject        string                    `json:"subject"`
	Status         domain.NotificationStatus `json:"status"`
	ErrorMessage   *string                   `json:"errorMessage,omitempty"`
	SentAt         *time.Time                `json:"sentAt,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
}

// ListNotificationsResponse wraps the email log of a document.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

func ToNotificationResponse(r *domain.NotificationRecord) NotificationResponse {
	return NotificationResponse{
		ID:             r.NotificationID,
		InvoiceID:      r.InvoiceID,
		ContractID:     r.ContractID,
		RecipientEmail: r.RecipientEmail,
		EmailType:      r.EmailType,
		Subject:        r.Subject,
		Status:         r.Status,
		ErrorMessage:   r.ErrorMessage,
		SentAt:         r.SentAt,
		CreatedAt:      r.CreatedAt,
	}
}

func ToListNotificationsResponse(records []domain.NotificationRecord) ListNotificationsResponse {
	res := make([]NotificationResponse, len(records))
	for i := range records {
		res[i] = ToNotificationResponse(&records[i])
	}
	return ListNotificationsResponse{Notifications: res}
}
