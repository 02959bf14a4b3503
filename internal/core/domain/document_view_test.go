package domain_test

import (
	"testing"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSelectInvoiceView(t *testing.T) {
	owner := domain.Session{UserID: "owner-1"}
	stranger := domain.Session{UserID: "someone-else"}

	tests := []struct {
		name    string
		status  domain.InvoiceStatus
		viewer  domain.Session
		kind    domain.DocumentViewKind
		actions []domain.DocumentAction
	}{
		{"owner sees preview of pending", domain.InvoiceStatusPending, owner, domain.OwnerPreview, []domain.DocumentAction{}},
		{"owner sees preview of approved", domain.InvoiceStatusApproved, owner, domain.OwnerPreview, []domain.DocumentAction{}},
		{"anonymous can approve or reject pending", domain.InvoiceStatusPending, domain.AnonymousSession, domain.RecipientActionable,
			[]domain.DocumentAction{domain.ActionApprove, domain.ActionReject}},
		{"other signed in user is a recipient", domain.InvoiceStatusPending, stranger, domain.RecipientActionable,
			[]domain.DocumentAction{domain.ActionApprove, domain.ActionReject}},
		{"approved can be paid", domain.InvoiceStatusApproved, domain.AnonymousSession, domain.RecipientActionable,
			[]domain.DocumentAction{domain.ActionPay}},
		{"paid is terminal", domain.InvoiceStatusPaid, domain.AnonymousSession, domain.RecipientTerminal, []domain.DocumentAction{}},
		{"rejected is terminal", domain.InvoiceStatusRejected, domain.AnonymousSession, domain.RecipientTerminal, []domain.DocumentAction{}},
		{"draft is terminal", domain.InvoiceStatusDraft, domain.AnonymousSession, domain.RecipientTerminal, []domain.DocumentAction{}},
		{"overdue is terminal", domain.InvoiceStatusOverdue, domain.AnonymousSession, domain.RecipientTerminal, []domain.DocumentAction{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &domain.Invoice{UserID: "owner-1", Status: tt.status}
			view := domain.SelectInvoiceView(inv, tt.viewer)
			assert.Equal(t, tt.kind, view.Kind)
			assert.Equal(t, tt.actions, view.Actions)
		})
	}
}

func TestSelectContractView(t *testing.T) {
	c := &domain.Contract{UserID: "owner-1", Status: domain.ContractStatusSent}

	view := domain.SelectContractView(c, domain.Session{UserID: "owner-1"})
	assert.Equal(t, domain.OwnerPreview, view.Kind)
	assert.False(t, view.Allows(domain.ActionAccept))

	view = domain.SelectContractView(c, domain.AnonymousSession)
	assert.Equal(t, domain.RecipientActionable, view.Kind)
	assert.True(t, view.Allows(domain.ActionAccept))
	assert.True(t, view.Allows(domain.ActionReject))

	c.Status = domain.ContractStatusAccepted
	view = domain.SelectContractView(c, domain.AnonymousSession)
	assert.Equal(t, domain.RecipientTerminal, view.Kind)
	assert.Empty(t, view.Actions)
}
