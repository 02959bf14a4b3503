package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft    InvoiceStatus = "draft"
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusApproved InvoiceStatus = "approved"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusRejected InvoiceStatus = "rejected"
	InvoiceStatusOverdue  InvoiceStatus = "overdue"
)

// IsValid reports whether s is a known invoice status.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusApproved,
		InvoiceStatusPaid, InvoiceStatusRejected, InvoiceStatusOverdue:
		return true
	}
	return false
}

// LineItem is one billed row of an invoice.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// Amount is quantity × rate.
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.Rate)
}

// InvoiceTotals is the breakdown of an invoice amount.
type InvoiceTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeInvoiceTotals sums the line items and applies taxRate (a percentage).
// Results are rounded to two decimal places.
func ComputeInvoiceTotals(items []LineItem, taxRate decimal.Decimal) InvoiceTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount())
	}
	tax := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100))
	return InvoiceTotals{
		Subtotal: subtotal.Round(2),
		Tax:      tax.Round(2),
		Total:    subtotal.Add(tax).Round(2),
	}
}

// Invoice is a bill issued by an owner to a client.
// Amount is computed from Items and TaxRate at save time and is authoritative afterwards.
type Invoice struct {
	InvoiceID       string          `json:"id"`
	UserID          string          `json:"userId"`
	ClientID        *string         `json:"clientId,omitempty"`
	Client          *Client         `json:"client,omitempty"`
	Status          InvoiceStatus   `json:"status"`
	Amount          decimal.Decimal `json:"amount"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	Currency        CurrencyCode    `json:"currency"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Items           []LineItem      `json:"items"`
	Notes           string          `json:"notes"`
	ShareToken      string          `json:"shareToken"`
	ApprovedDate    *time.Time      `json:"approvedDate,omitempty"`
	RejectionReason *string         `json:"rejectionReason,omitempty"`
	RejectionDate   *time.Time      `json:"rejectionDate,omitempty"`
	Timestamps
}

// Number is the short reference shown to people.
func (i *Invoice) Number() string {
	return ShortID(i.InvoiceID)
}

// Totals recomputes the breakdown from the stored items.
func (i *Invoice) Totals() InvoiceTotals {
	return ComputeInvoiceTotals(i.Items, i.TaxRate)
}

// IsEditable reports whether the owner may still change the invoice content.
func (i *Invoice) IsEditable() bool {
	return i.Status == InvoiceStatusDraft
}

// CanSend reports whether the invoice may be sent to its client.
func (i *Invoice) CanSend() bool {
	return i.Status == InvoiceStatusDraft
}

// AwaitsResponse reports whether the recipient may approve or reject.
func (i *Invoice) AwaitsResponse() bool {
	return i.Status == InvoiceStatusPending
}

// CanPay reports whether a checkout callback may be recorded against the invoice.
func (i *Invoice) CanPay() bool {
	return i.Status == InvoiceStatusApproved || i.Status == InvoiceStatusPending
}

// IsOverdue reports whether an outstanding invoice is past its due date as of now.
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.DueDate == nil {
		return false
	}
	if i.Status != InvoiceStatusPending && i.Status != InvoiceStatusApproved {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return i.DueDate.Before(today)
}

// RecipientEmail is the client email the invoice is sent to, if any.
func (i *Invoice) RecipientEmail() string {
	if i.Client == nil {
		return ""
	}
	return i.Client.Email
}

// Duplicate returns a fresh draft copy with a new id and share token.
// Line items are copied by value and response stamps are cleared.
func (i *Invoice) Duplicate(newID, shareToken string, now time.Time) Invoice {
	items := make([]LineItem, len(i.Items))
	copy(items, i.Items)

	dup := Invoice{
		InvoiceID:  newID,
		UserID:     i.UserID,
		Client:     i.Client,
		Status:     InvoiceStatusDraft,
		Amount:     i.Amount,
		TaxRate:    i.TaxRate,
		Currency:   i.Currency,
		Items:      items,
		Notes:      i.Notes,
		ShareToken: shareToken,
		Timestamps: Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if i.ClientID != nil {
		clientID := *i.ClientID
		dup.ClientID = &clientID
	}
	if i.DueDate != nil {
		due := *i.DueDate
		dup.DueDate = &due
	}
	return dup
}
