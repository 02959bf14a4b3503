package dto

import (
	"github.com/dustbill/dustbill_backend/internal/core/domain"
)

// PublicInvoiceResponse is an invoice as rendered for whoever holds its share link.
type PublicInvoiceResponse struct {
	Invoice InvoiceResponse     `json:"invoice"`
	From    domain.Sender       `json:"from"`
	View    domain.DocumentView `json:"view"`
}

// PublicContractResponse is a contract as rendered for whoever holds its share link.
type PublicContractResponse struct {
	Contract ContractResponse    `json:"contract"`
	From     domain.Sender       `json:"from"`
	View     domain.DocumentView `json:"view"`
}

// RejectRequest carries the recipient's free-text rejection reason.
type RejectRequest struct {
	Reason string `json:"reason" binding:"max=2000"`
}

// AcceptContractRequest optionally carries a typed signature.
type AcceptContractRequest struct {
	SignatureName string `json:"signatureName" binding:"max=200"`
}

// ApproveInvoiceResponse returns the approved invoice plus what the checkout widget needs next.
type ApproveInvoiceResponse struct {
	Invoice  InvoiceResponse  `json:"invoice"`
	Checkout CheckoutResponse `json:"checkout"`
}

func ToPublicInvoiceResponse(p *domain.PublicInvoice, publicURL string) PublicInvoiceResponse {
	inv := ToInvoiceResponse(p.Invoice, publicURL)
	return PublicInvoiceResponse{Invoice: inv, From: p.Sender, View: p.View}
}

func ToPublicContractResponse(p *domain.PublicContract, publicURL string) PublicContractResponse {
	c := ToContractResponse(p.Contract, publicURL)
	return PublicContractResponse{Contract: c, From: p.Sender, View: p.View}
}
