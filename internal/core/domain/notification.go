package domain

import (
	"fmt"
	"time"
)

// EmailType selects the template and recipient of a notification.
type EmailType string

const (
	EmailInvoiceSent      EmailType = "invoice_sent"
	EmailInvoiceApproved  EmailType = "invoice_approved"
	EmailInvoiceRejected  EmailType = "invoice_rejected"
	EmailContractSent     EmailType = "contract_sent"
	EmailContractAccepted EmailType = "contract_accepted"
	EmailContractRejected EmailType = "contract_rejected"
	EmailPaymentReceived  EmailType = "payment_received"
)

// IsValid reports whether t is a known email type.
func (t EmailType) IsValid() bool {
	switch t {
	case EmailInvoiceSent, EmailInvoiceApproved, EmailInvoiceRejected,
		EmailContractSent, EmailContractAccepted, EmailContractRejected, EmailPaymentReceived:
		return true
	}
	return false
}

// IsOwnerBound reports whether the notification goes back to the document owner
// rather than to the client.
func (t EmailType) IsOwnerBound() bool {
	switch t {
	case EmailInvoiceApproved, EmailInvoiceRejected, EmailContractAccepted,
		EmailContractRejected, EmailPaymentReceived:
		return true
	}
	return false
}

// IsContract reports whether the type concerns a contract rather than an invoice.
func (t EmailType) IsContract() bool {
	return t == EmailContractSent || t == EmailContractAccepted || t == EmailContractRejected
}

// NotificationStatus is the delivery state of a notification record.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// NotificationRecord is one queued or completed email send (the email_logs row).
// Exactly one of InvoiceID and ContractID is set.
type NotificationRecord struct {
	NotificationID string             `json:"id"`
	InvoiceID      *string            `json:"invoiceId,omitempty"`
	ContractID     *string            `json:"contractId,omitempty"`
	RecipientEmail string             `json:"recipientEmail"`
	EmailType      EmailType          `json:"emailType"`
	Subject        string             `json:"subject"`
	Status         NotificationStatus `json:"status"`
	ErrorMessage   *string            `json:"errorMessage,omitempty"`
	SentAt         *time.Time         `json:"sentAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// NotificationContext is a notification record joined with everything needed to render and address it.
type NotificationContext struct {
	Record   NotificationRecord
	Invoice  *Invoice
	Contract *Contract
	Client   *Client
	Owner    *Profile
}

// SubjectFor derives the default subject line for an email type.
func SubjectFor(t EmailType, invoice *Invoice, contract *Contract) string {
	var number, title string
	if invoice != nil {
		number = invoice.Number()
	}
	if contract != nil {
		title = contract.Title
	}
	switch t {
	case EmailInvoiceSent:
		return fmt.Sprintf("New Invoice #%s - Please Review", number)
	case EmailInvoiceApproved:
		return fmt.Sprintf("Invoice #%s Approved", number)
	case EmailInvoiceRejected:
		return fmt.Sprintf("Invoice #%s Rejected", number)
	case EmailContractSent:
		return fmt.Sprintf("New Contract: %s - Please Review", title)
	case EmailContractAccepted:
		return fmt.Sprintf("Contract Accepted: %s", title)
	case EmailContractRejected:
		return fmt.Sprintf("Contract Rejected: %s", title)
	case EmailPaymentReceived:
		return fmt.Sprintf("Payment Received for Invoice #%s", number)
	default:
		return "Notification from Dustbill"
	}
}
