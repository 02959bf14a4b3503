package domain_test

import (
	"testing"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSubjectFor(t *testing.T) {
	inv := &domain.Invoice{InvoiceID: "1a2b3c4d-0000-4000-8000-000000000000"}
	con := &domain.Contract{Title: "Logo design"}

	tests := []struct {
		emailType domain.EmailType
		want      string
	}{
		{domain.EmailInvoiceSent, "New Invoice #1a2b3c4d - Please Review"},
		{domain.EmailInvoiceApproved, "Invoice #1a2b3c4d Approved"},
		{domain.EmailInvoiceRejected, "Invoice #1a2b3c4d Rejected"},
		{domain.EmailContractSent, "New Contract: Logo design - Please Review"},
		{domain.EmailContractAccepted, "Contract Accepted: Logo design"},
		{domain.EmailContractRejected, "Contract Rejected: Logo design"},
		{domain.EmailPaymentReceived, "Payment Received for Invoice #1a2b3c4d"},
		{domain.EmailType("reminder"), "Notification from Dustbill"},
	}
	for _, tt := range tests {
		t.Run(string(tt.emailType), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SubjectFor(tt.emailType, inv, con))
		})
	}
}

func TestEmailType_IsOwnerBound(t *testing.T) {
	assert.False(t, domain.EmailInvoiceSent.IsOwnerBound())
	assert.False(t, domain.EmailContractSent.IsOwnerBound())
	assert.True(t, domain.EmailInvoiceApproved.IsOwnerBound())
	assert.True(t, domain.EmailInvoiceRejected.IsOwnerBound())
	assert.True(t, domain.EmailContractAccepted.IsOwnerBound())
	assert.True(t, domain.EmailContractRejected.IsOwnerBound())
	assert.True(t, domain.EmailPaymentReceived.IsOwnerBound())
}
