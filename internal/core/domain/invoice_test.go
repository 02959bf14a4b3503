package domain_test

import (
	"testing"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeInvoiceTotals(t *testing.T) {
	tests := []struct {
		name     string
		items    []domain.LineItem
		taxRate  decimal.Decimal
		subtotal string
		tax      string
		total    string
	}{
		{
			name: "two items with ten percent tax",
			items: []domain.LineItem{
				{Description: "Design", Quantity: dec("2"), Rate: dec("50")},
				{Description: "Hosting", Quantity: dec("1"), Rate: dec("25")},
			},
			taxRate:  dec("10"),
			subtotal: "125",
			tax:      "12.5",
			total:    "137.5",
		},
		{
			name:     "no items",
			items:    nil,
			taxRate:  dec("18"),
			subtotal: "0",
			tax:      "0",
			total:    "0",
		},
		{
			name: "fractional quantity",
			items: []domain.LineItem{
				{Description: "Consulting", Quantity: dec("1.5"), Rate: dec("80")},
			},
			taxRate:  decimal.Zero,
			subtotal: "120",
			tax:      "0",
			total:    "120",
		},
		{
			name: "zero rate item contributes nothing",
			items: []domain.LineItem{
				{Description: "Free call", Quantity: dec("3"), Rate: decimal.Zero},
				{Description: "Logo", Quantity: dec("1"), Rate: dec("199.99")},
			},
			taxRate:  dec("5"),
			subtotal: "199.99",
			tax:      "10",
			total:    "209.99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ComputeInvoiceTotals(tt.items, tt.taxRate)
			assert.True(t, dec(tt.subtotal).Equal(got.Subtotal), "subtotal: got %s", got.Subtotal)
			assert.True(t, dec(tt.tax).Equal(got.Tax), "tax: got %s", got.Tax)
			assert.True(t, dec(tt.total).Equal(got.Total), "total: got %s", got.Total)
		})
	}
}

func TestInvoice_Duplicate(t *testing.T) {
	clientID := "client-1"
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	approved := time.Now()
	reason := "wrong amount"
	src := domain.Invoice{
		InvoiceID:       "inv-1",
		UserID:          "owner-1",
		ClientID:        &clientID,
		Status:          domain.InvoiceStatusRejected,
		Amount:          dec("137.5"),
		TaxRate:         dec("10"),
		Currency:        domain.CurrencyEUR,
		DueDate:         &due,
		Items:           []domain.LineItem{{Description: "Design", Quantity: dec("2"), Rate: dec("50")}},
		ShareToken:      "token-1",
		ApprovedDate:    &approved,
		RejectionReason: &reason,
	}

	now := time.Now()
	dup := src.Duplicate("inv-2", "token-2", now)

	assert.Equal(t, "inv-2", dup.InvoiceID)
	assert.Equal(t, domain.InvoiceStatusDraft, dup.Status)
	assert.Equal(t, "token-2", dup.ShareToken)
	assert.NotEqual(t, src.ShareToken, dup.ShareToken)
	assert.Nil(t, dup.ApprovedDate)
	assert.Nil(t, dup.RejectionReason)
	assert.Nil(t, dup.RejectionDate)
	assert.Equal(t, src.Items, dup.Items)
	assert.True(t, src.Amount.Equal(dup.Amount))

	// Mutating the copy must not leak into the source.
	dup.Items[0].Description = "changed"
	*dup.ClientID = "client-2"
	*dup.DueDate = due.AddDate(0, 1, 0)
	assert.Equal(t, "Design", src.Items[0].Description)
	assert.Equal(t, "client-1", *src.ClientID)
	assert.Equal(t, due, *src.DueDate)
}

func TestInvoice_IsOverdue(t *testing.T) {
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  domain.InvoiceStatus
		dueDate *time.Time
		want    bool
	}{
		{"pending past due", domain.InvoiceStatusPending, &yesterday, true},
		{"approved past due", domain.InvoiceStatusApproved, &yesterday, true},
		{"due today is not overdue", domain.InvoiceStatusPending, &today, false},
		{"paid is never overdue", domain.InvoiceStatusPaid, &yesterday, false},
		{"draft is never overdue", domain.InvoiceStatusDraft, &yesterday, false},
		{"no due date", domain.InvoiceStatusPending, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := domain.Invoice{Status: tt.status, DueDate: tt.dueDate}
			assert.Equal(t, tt.want, inv.IsOverdue(now))
		})
	}
}

func TestInvoice_StatusGuards(t *testing.T) {
	inv := domain.Invoice{Status: domain.InvoiceStatusDraft}
	assert.True(t, inv.IsEditable())
	assert.True(t, inv.CanSend())
	assert.False(t, inv.AwaitsResponse())
	assert.False(t, inv.CanPay())

	inv.Status = domain.InvoiceStatusPending
	assert.False(t, inv.IsEditable())
	assert.True(t, inv.AwaitsResponse())
	assert.True(t, inv.CanPay())

	inv.Status = domain.InvoiceStatusApproved
	assert.False(t, inv.AwaitsResponse())
	assert.True(t, inv.CanPay())

	inv.Status = domain.InvoiceStatusPaid
	assert.False(t, inv.CanPay())
}

func TestMinorUnits(t *testing.T) {
	require.Equal(t, int64(13750), domain.MinorUnits(dec("137.5")))
	require.Equal(t, int64(1), domain.MinorUnits(dec("0.005")))
	require.Equal(t, int64(0), domain.MinorUnits(decimal.Zero))
}
