package domain

import "time"

// DocumentEventType names a lifecycle change of an invoice or contract.
type DocumentEventType string

const (
	EventInvoiceSent      DocumentEventType = "invoice.sent"
	EventInvoiceApproved  DocumentEventType = "invoice.approved"
	EventInvoiceRejected  DocumentEventType = "invoice.rejected"
	EventInvoicePaid      DocumentEventType = "invoice.paid"
	EventContractSent     DocumentEventType = "contract.sent"
	EventContractAccepted DocumentEventType = "contract.accepted"
	EventContractRejected DocumentEventType = "contract.rejected"
)

// DocumentEvent is published after a lifecycle change has been persisted.
type DocumentEvent struct {
	Type       DocumentEventType `json:"type"`
	DocumentID string            `json:"documentId"`
	OwnerID    string            `json:"ownerId"`
	Status     string            `json:"status"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// NewDocumentEvent stamps an event at now.
func NewDocumentEvent(t DocumentEventType, documentID, ownerID, status string, now time.Time) DocumentEvent {
	return DocumentEvent{Type: t, DocumentID: documentID, OwnerID: ownerID, Status: status, OccurredAt: now.UTC()}
}
