package dto

import (
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/utils"
)

// ContractRequest is the issuer form payload for both create and update.
type ContractRequest struct {
	ClientID    string `json:"clientId"`
	Title       string `json:"title" binding:"max=300"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Terms       string `json:"terms"`
	Status      string `json:"status" binding:"omitempty,oneof=draft sent"`
}

// ContractResponse defines the data returned for a contract.
type ContractResponse struct {
	ID              string                  `json:"id"`
	ClientID        *string                 `json:"clientId,omitempty"`
	Client          *DocumentClientResponse `json:"client,omitempty"`
	Status          domain.ContractStatus   `json:"status"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	Content         string                  `json:"content"`
	Terms           string                  `json:"terms"`
	ShareToken      string                  `json:"shareToken"`
	ShareURL        string                  `json:"shareUrl"`
	SignedDate      *time.Time              `json:"signedDate,omitempty"`
	SignatureName   *string                 `json:"signatureName,omitempty"`
	RejectionReason *string                 `json:"rejectionReason,omitempty"`
	RejectionDate   *time.Time              `json:"rejectionDate,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// ListContractsResponse wraps a page of contracts.
type ListContractsResponse struct {
	Contracts []ContractResponse `json:"contracts"`
	NextToken *string            `json:"nextToken,omitempty"`
}

func ToContractResponse(c *domain.Contract, publicURL string) ContractResponse {
	return ContractResponse{
		ID:              c.ContractID,
		ClientID:        c.ClientID,
		Client:          toDocumentClient(c.Client),
		Status:          c.Status,
		Title:           c.Title,
		Description:     c.Description,
		Content:         c.Content,
		Terms:           c.Terms,
		ShareToken:      c.ShareToken,
		ShareURL:        utils.ContractShareURL(publicURL, c.ShareToken),
		SignedDate:      c.SignedDate,
		SignatureName:   c.SignatureName,
		RejectionReason: c.RejectionReason,
		RejectionDate:   c.RejectionDate,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func ToListContractsResponse(contracts []domain.Contract, nextToken *string, publicURL string) ListContractsResponse {
	res := make([]ContractResponse, len(contracts))
	for i := range contracts {
		res[i] = ToContractResponse(&contracts[i], publicURL)
	}
	return ListContractsResponse{Contracts: res, NextToken: nextToken}
}
