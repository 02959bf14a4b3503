package dto

import (
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates such as due dates.
const DateLayout = "2006-01-02"

// LineItemRequest is one billed row as submitted by the issuer form.
type LineItemRequest struct {
	Description string          `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// InvoiceRequest is the issuer form payload for both create and update.
// Status selects between saving a draft and sending immediately.
type InvoiceRequest struct {
	ClientID      *string           `json:"clientId" binding:"omitempty,uuid"`
	ClientName    string            `json:"clientName" binding:"max=200"`
	ClientEmail   string            `json:"clientEmail"`
	ClientPhone   string            `json:"clientPhone"`
	ClientAddress string            `json:"clientAddress"`
	Currency      string            `json:"currency" binding:"omitempty,currency"`
	DueDate       string            `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Items         []LineItemRequest `json:"items" binding:"dive"`
	TaxRate       decimal.Decimal   `json:"taxRate"`
	Notes         string            `json:"notes"`
	Status        string            `json:"status" binding:"omitempty,oneof=draft pending"`
}

// ListDocumentsParams defines query parameters for listing invoices or contracts.
type ListDocumentsParams struct {
	Status    string `form:"status"`
	Search    string `form:"search"`
	Limit     int    `form:"limit"`
	NextToken string `form:"nextToken"`
}

// LineItemResponse is one billed row with its computed amount.
type LineItemResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	ID              string                  `json:"id"`
	Number          string                  `json:"number"`
	ClientID        *string                 `json:"clientId,omitempty"`
	Client          *DocumentClientResponse `json:"client,omitempty"`
	Status          domain.InvoiceStatus    `json:"status"`
	Currency        domain.CurrencyCode     `json:"currency"`
	Items           []LineItemResponse      `json:"items"`
	Subtotal        decimal.Decimal         `json:"subtotal"`
	TaxRate         decimal.Decimal         `json:"taxRate"`
	Tax             decimal.Decimal         `json:"tax"`
	Amount          decimal.Decimal         `json:"amount"`
	FormattedAmount string                  `json:"formattedAmount"`
	DueDate         *string                 `json:"dueDate,omitempty"`
	Notes           string                  `json:"notes"`
	ShareToken      string                  `json:"shareToken"`
	ShareURL        string                  `json:"shareUrl"`
	ApprovedDate    *time.Time              `json:"approvedDate,omitempty"`
	RejectionReason *string                 `json:"rejectionReason,omitempty"`
	RejectionDate   *time.Time              `json:"rejectionDate,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ShareLinkResponse carries the public URL of a document.
type ShareLinkResponse struct {
	URL string `json:"url"`
}

// ToInvoiceResponse converts a domain.Invoice to its API shape. publicURL builds the share link.
func ToInvoiceResponse(inv *domain.Invoice, publicURL string) InvoiceResponse {
	totals := inv.Totals()
	items := make([]LineItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = LineItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      it.Amount(),
		}
	}

	var due *string
	if inv.DueDate != nil {
		s := inv.DueDate.Format(DateLayout)
		due = &s
	}

	return InvoiceResponse{
		ID:              inv.InvoiceID,
		Number:          inv.Number(),
		ClientID:        inv.ClientID,
		Client:          toDocumentClient(inv.Client),
		Status:          inv.Status,
		Currency:        inv.Currency,
		Items:           items,
		Subtotal:        totals.Subtotal,
		TaxRate:         inv.TaxRate,
		Tax:             totals.Tax,
		Amount:          inv.Amount,
		FormattedAmount: utils.FormatMoney(inv.Amount, inv.Currency),
		DueDate:         due,
		Notes:           inv.Notes,
		ShareToken:      inv.ShareToken,
		ShareURL:        utils.InvoiceShareURL(publicURL, inv.ShareToken),
		ApprovedDate:    inv.ApprovedDate,
		RejectionReason: inv.RejectionReason,
		RejectionDate:   inv.RejectionDate,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

// ToListInvoicesResponse converts a page of invoices.
func ToListInvoicesResponse(invoices []domain.Invoice, nextToken *string, publicURL string) ListInvoicesResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i], publicURL)
	}
	return ListInvoicesResponse{Invoices: res, NextToken: nextToken}
}
