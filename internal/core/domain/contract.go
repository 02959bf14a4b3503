package domain

import "time"

// ContractStatus is the lifecycle state of a contract.
type ContractStatus string

const (
	ContractStatusDraft    ContractStatus = "draft"
	ContractStatusSent     ContractStatus = "sent"
	ContractStatusAccepted ContractStatus = "accepted"
	ContractStatusRejected ContractStatus = "rejected"
)

// IsValid reports whether s is a known contract status.
func (s ContractStatus) IsValid() bool {
	switch s {
	case ContractStatusDraft, ContractStatusSent, ContractStatusAccepted, ContractStatusRejected:
		return true
	}
	return false
}

// DefaultContractTerms is used when a contract is saved with empty terms.
const DefaultContractTerms = `1. Payment Terms: Payment is due within 30 days of invoice date.
2. Scope of Work: As detailed in the project description above.
3. Revisions: Up to 2 rounds of revisions included in the quoted price.
4. Termination: Either party may terminate with 14 days written notice.
5. Confidentiality: Both parties agree to maintain confidentiality of proprietary information.
6. Intellectual Property: Upon full payment, all rights transfer to the client.`

// CopyTitleSuffix is appended to the title of a duplicated contract.
const CopyTitleSuffix = " (Copy)"

// Contract is an agreement an owner sends to a client for acceptance.
type Contract struct {
	ContractID      string         `json:"id"`
	UserID          string         `json:"userId"`
	ClientID        *string        `json:"clientId,omitempty"`
	Client          *Client        `json:"client,omitempty"`
	Status          ContractStatus `json:"status"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Content         string         `json:"content"`
	Terms           string         `json:"terms"`
	ShareToken      string         `json:"shareToken"`
	SignedDate      *time.Time     `json:"signedDate,omitempty"`
	SignatureName   *string        `json:"signatureName,omitempty"`
	RejectionReason *string        `json:"rejectionReason,omitempty"`
	RejectionDate   *time.Time     `json:"rejectionDate,omitempty"`
	Timestamps
}

// IsEditable reports whether the owner may still change the contract content.
// Rejected contracts can be revised and resent.
func (c *Contract) IsEditable() bool {
	return c.Status == ContractStatusDraft || c.Status == ContractStatusRejected
}

// CanSend reports whether the contract may be (re)sent to its client.
func (c *Contract) CanSend() bool {
	return c.Status == ContractStatusDraft || c.Status == ContractStatusRejected
}

// AwaitsResponse reports whether the recipient may accept or reject.
func (c *Contract) AwaitsResponse() bool {
	return c.Status == ContractStatusSent
}

// RecipientEmail is the client email the contract is sent to, if any.
func (c *Contract) RecipientEmail() string {
	if c.Client == nil {
		return ""
	}
	return c.Client.Email
}

// Duplicate returns a fresh draft copy with a new id, share token and a " (Copy)" title.
func (c *Contract) Duplicate(newID, shareToken string, now time.Time) Contract {
	dup := Contract{
		ContractID:  newID,
		UserID:      c.UserID,
		Client:      c.Client,
		Status:      ContractStatusDraft,
		Title:       c.Title + CopyTitleSuffix,
		Description: c.Description,
		Content:     c.Content,
		Terms:       c.Terms,
		ShareToken:  shareToken,
		Timestamps:  Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if c.ClientID != nil {
		clientID := *c.ClientID
		dup.ClientID = &clientID
	}
	return dup
}
