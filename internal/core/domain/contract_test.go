package domain_test

import (
	"testing"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestContract_Duplicate(t *testing.T) {
	signed := time.Now()
	clientID := "client-1"
	src := domain.Contract{
		ContractID: "c-1",
		UserID:     "owner-1",
		ClientID:   &clientID,
		Status:     domain.ContractStatusAccepted,
		Title:      "Website redesign",
		Content:    "Scope...",
		Terms:      domain.DefaultContractTerms,
		ShareToken: "token-1",
		SignedDate: &signed,
	}

	dup := src.Duplicate("c-2", "token-2", time.Now())

	assert.Equal(t, "Website redesign (Copy)", dup.Title)
	assert.Equal(t, domain.ContractStatusDraft, dup.Status)
	assert.Equal(t, "token-2", dup.ShareToken)
	assert.Nil(t, dup.SignedDate)
	assert.Equal(t, src.Content, dup.Content)
	assert.Equal(t, src.Terms, dup.Terms)
	assert.Equal(t, "client-1", *dup.ClientID)
}

func TestContract_StatusGuards(t *testing.T) {
	tests := []struct {
		status         domain.ContractStatus
		canSend        bool
		awaitsResponse bool
	}{
		{domain.ContractStatusDraft, true, false},
		{domain.ContractStatusSent, false, true},
		{domain.ContractStatusAccepted, false, false},
		{domain.ContractStatusRejected, true, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			c := domain.Contract{Status: tt.status}
			assert.Equal(t, tt.canSend, c.CanSend())
			assert.Equal(t, tt.awaitsResponse, c.AwaitsResponse())
		})
	}
}
