package emails_test

import (
	"testing"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/emails"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://dust-bill.vercel.app"

func invoiceContext(t domain.EmailType) *domain.NotificationContext {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	reason := "Wrong <rate>"
	return &domain.NotificationContext{
		Record: domain.NotificationRecord{EmailType: t},
		Invoice: &domain.Invoice{
			InvoiceID:       "abcdef12-3456-7890-abcd-ef1234567890",
			Amount:          decimal.RequireFromString("1375.5"),
			Currency:        domain.CurrencyUSD,
			DueDate:         &due,
			ShareToken:      "tok-123",
			RejectionReason: &reason,
		},
		Client: &domain.Client{Name: "Acme & Co"},
		Owner:  &domain.Profile{BusinessName: "Studio Nine", Email: "owner@example.com"},
	}
}

func TestRenderInvoiceSent(t *testing.T) {
	r, err := emails.NewRenderer()
	require.NoError(t, err)

	nc := invoiceContext(domain.EmailInvoiceSent)
	html, err := r.Render(domain.EmailInvoiceSent, emails.NewData(nc, baseURL, time.Now()))
	require.NoError(t, err)

	assert.Contains(t, html, "You have a new invoice")
	assert.Contains(t, html, "abcdef12")
	assert.Contains(t, html, "$1,375.50")
	assert.Contains(t, html, "Mar 1, 2025")
	assert.Contains(t, html, baseURL+"/invoice/tok-123")
	assert.Contains(t, html, "Acme &amp; Co")
	assert.Contains(t, html, "Studio Nine")
}

func TestRenderOwnerBoundLinksToList(t *testing.T) {
	r := emails.MustNewRenderer()

	nc := invoiceContext(domain.EmailInvoiceRejected)
	html, err := r.Render(domain.EmailInvoiceRejected, emails.NewData(nc, baseURL, time.Now()))
	require.NoError(t, err)

	assert.Contains(t, html, "Invoice was rejected")
	assert.Contains(t, html, baseURL+"/invoices")
	assert.NotContains(t, html, "/invoice/tok-123")
	assert.Contains(t, html, "Wrong &lt;rate&gt;", "reason is escaped")
}

func TestRenderContractTemplates(t *testing.T) {
	r := emails.MustNewRenderer()
	signed := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)
	signature := "Jane Client"
	nc := &domain.NotificationContext{
		Contract: &domain.Contract{Title: "Website redesign", ShareToken: "ctok", SignedDate: &signed, SignatureName: &signature},
		Client:   &domain.Client{Name: "Acme"},
	}

	tests := []struct {
		emailType domain.EmailType
		contains  []string
	}{
		{domain.EmailContractSent, []string{"You have a contract to review", baseURL + "/contract/ctok"}},
		{domain.EmailContractAccepted, []string{"Your contract was accepted!", "Jane Client", "Apr 2, 2025", baseURL + "/contracts"}},
		{domain.EmailContractRejected, []string{"Contract was rejected", "No reason provided"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.emailType), func(t *testing.T) {
			nc.Record.EmailType = tt.emailType
			html, err := r.Render(tt.emailType, emails.NewData(nc, baseURL, time.Now()))
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, html, s)
			}
		})
	}
}

func TestRenderUnknownTypeFallsBack(t *testing.T) {
	r := emails.MustNewRenderer()
	html, err := r.Render(domain.EmailType("weekly_digest"), emails.Data{BaseURL: baseURL, Year: 2025})
	require.NoError(t, err)
	assert.Contains(t, html, "You have a new notification from Dustbill.")
	assert.Contains(t, html, "2025 Dustbill")
}
