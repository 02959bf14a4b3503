package dto

import (
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentSuccessRequest is the checkout widget's success callback payload.
type PaymentSuccessRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	OrderID       string `json:"order_id"`
	Signature     string `json:"signature"`
	PaymentMethod string `json:"payment_method"`
}

// PaymentFailureRequest is the checkout widget's failure callback payload.
type PaymentFailureRequest struct {
	Error PaymentErrorDetails `json:"error" binding:"required"`
}

// PaymentErrorDetails describes why a checkout attempt failed.
type PaymentErrorDetails struct {
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

// CheckoutResponse carries the widget configuration for one invoice.
type CheckoutResponse struct {
	KeyID         string              `json:"keyId"`
	InvoiceID     string              `json:"invoiceId"`
	InvoiceNumber string              `json:"invoiceNumber"`
	Amount        decimal.Decimal     `json:"amount"`
	AmountMinor   int64               `json:"amountMinor"`
	Currency      domain.CurrencyCode `json:"currency"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Prefill       CheckoutPrefill     `json:"prefill"`
}

// CheckoutPrefill pre-populates the payer's details in the widget.
type CheckoutPrefill struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PaymentResponse defines the data returned for a payment attempt.
type PaymentResponse struct {
	ID                string               `json:"id"`
	InvoiceID         string               `json:"invoiceId"`
	ExternalPaymentID string               `json:"externalPaymentId"`
	OrderID           string               `json:"orderId,omitempty"`
	Amount            decimal.Decimal      `json:"amount"`
	Currency          domain.CurrencyCode  `json:"currency"`
	Status            domain.PaymentStatus `json:"status"`
	PaymentMethod     string               `json:"paymentMethod"`
	ErrorDescription  string               `json:"errorDescription,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
}

// ListPaymentsResponse wraps the payment attempts of an invoice.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

func ToCheckoutResponse(c *domain.CheckoutDetails) CheckoutResponse {
	return CheckoutResponse{
		KeyID:         c.KeyID,
		InvoiceID:     c.InvoiceID,
		InvoiceNumber: c.InvoiceNumber,
		Amount:        c.Amount,
		AmountMinor:   c.AmountMinor,
		Currency:      c.Currency,
		Name:          c.MerchantName,
		Description:   "Invoice #" + c.InvoiceNumber,
		Prefill:       CheckoutPrefill{Name: c.PrefillName, Email: c.PrefillEmail},
	}
}

func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.PaymentID,
		InvoiceID:         p.InvoiceID,
		ExternalPaymentID: p.ExternalPaymentID,
		OrderID:           p.OrderID,
		Amount:            p.Amount,
		Currency:          p.Currency,
		Status:            p.Status,
		PaymentMethod:     p.PaymentMethod,
		ErrorDescription:  p.ErrorDescription,
		CreatedAt:         p.CreatedAt,
	}
}

func ToListPaymentsResponse(payments []domain.Payment) ListPaymentsResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return ListPaymentsResponse{Payments: res}
}
