package domain_test

import (
	"testing"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func total(status domain.InvoiceStatus, start time.Time, count int, amount string) domain.InvoiceTotal {
	return domain.InvoiceTotal{Status: status, Month: start, Count: count, Amount: dec(amount)}
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	june, may := month(2026, time.June), month(2026, time.May)

	totals := []domain.InvoiceTotal{
		total(domain.InvoiceStatusPaid, month(2025, time.January), 1, "1000"),
		total(domain.InvoiceStatusOverdue, may, 1, "20"),
		total(domain.InvoiceStatusPaid, may, 1, "200"),
		total(domain.InvoiceStatusDraft, may, 1, "999"),
		total(domain.InvoiceStatusPaid, june, 1, "300"),
		total(domain.InvoiceStatusPending, june, 1, "50"),
	}
	contractCounts := map[domain.ContractStatus]int{
		domain.ContractStatusSent:     2,
		domain.ContractStatusAccepted: 1,
	}
	recent := make([]domain.Invoice, 7)

	d := domain.BuildDashboard(totals, contractCounts, recent, 4, now)

	assert.True(t, dec("1500").Equal(d.TotalRevenue))
	assert.True(t, dec("50").Equal(d.TotalPending))
	assert.True(t, dec("20").Equal(d.TotalOverdue))
	assert.True(t, dec("300").Equal(d.ThisMonthRevenue))
	assert.True(t, dec("200").Equal(d.LastMonthRevenue))
	assert.True(t, dec("50").Equal(d.RevenueChange), "got %s", d.RevenueChange)

	require.Len(t, d.RevenueChart, 6)
	assert.Equal(t, "Jan", d.RevenueChart[0].Month)
	assert.Equal(t, "Jun", d.RevenueChart[5].Month)
	assert.True(t, dec("300").Equal(d.RevenueChart[5].Paid))
	assert.True(t, dec("50").Equal(d.RevenueChart[5].Pending))
	assert.True(t, dec("200").Equal(d.RevenueChart[4].Paid))
	assert.True(t, dec("20").Equal(d.RevenueChart[4].Pending))

	assert.Equal(t, 3, d.InvoiceCounts[domain.InvoiceStatusPaid])
	assert.Equal(t, 1, d.InvoiceCounts[domain.InvoiceStatusDraft])
	assert.Equal(t, 2, d.ContractCounts[domain.ContractStatusSent])
	assert.Equal(t, 4, d.ClientCount)
	assert.Len(t, d.RecentInvoices, domain.RecentInvoiceLimit)
}

func TestBuildDashboard_ApprovedCountsAsPending(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	june := month(2026, time.June)
	totals := []domain.InvoiceTotal{
		total(domain.InvoiceStatusApproved, june, 300, "300"),
		total(domain.InvoiceStatusPending, june, 100, "100"),
	}

	d := domain.BuildDashboard(totals, nil, nil, 0, now)

	assert.True(t, dec("400").Equal(d.TotalPending), "got %s", d.TotalPending)
	assert.True(t, dec("400").Equal(d.RevenueChart[5].Pending), "got %s", d.RevenueChart[5].Pending)
	assert.Equal(t, 300, d.InvoiceCounts[domain.InvoiceStatusApproved])
}

func TestBuildDashboard_LargeAccountIsNotTruncated(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	totals := []domain.InvoiceTotal{
		total(domain.InvoiceStatusPaid, month(2026, time.June), 450, "45000"),
		total(domain.InvoiceStatusPaid, month(2026, time.March), 400, "40000"),
		total(domain.InvoiceStatusOverdue, month(2024, time.December), 250, "2500"),
	}

	d := domain.BuildDashboard(totals, nil, nil, 0, now)

	assert.Equal(t, 850, d.InvoiceCounts[domain.InvoiceStatusPaid])
	assert.Equal(t, 250, d.InvoiceCounts[domain.InvoiceStatusOverdue])
	assert.True(t, dec("85000").Equal(d.TotalRevenue), "got %s", d.TotalRevenue)
	assert.True(t, dec("2500").Equal(d.TotalOverdue))
	assert.True(t, dec("40000").Equal(d.RevenueChart[2].Paid))
}

func TestBuildDashboard_RevenueChangeWithoutLastMonth(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	totals := []domain.InvoiceTotal{total(domain.InvoiceStatusPaid, month(2026, time.June), 1, "10")}

	d := domain.BuildDashboard(totals, nil, nil, 0, now)
	assert.True(t, dec("100").Equal(d.RevenueChange))

	empty := domain.BuildDashboard(nil, nil, nil, 0, now)
	assert.True(t, empty.RevenueChange.IsZero())
	assert.Empty(t, empty.RecentInvoices)
}
