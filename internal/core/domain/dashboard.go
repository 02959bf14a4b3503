package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyRevenue is one bar of the revenue chart.
type MonthlyRevenue struct {
	Month   string          `json:"month"` // e.g. "Jan"
	Start   time.Time       `json:"start"`
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
}

// Dashboard summarises an owner's invoices and contracts.
type Dashboard struct {
	TotalRevenue     decimal.Decimal        `json:"totalRevenue"`
	TotalPending     decimal.Decimal        `json:"totalPending"`
	TotalOverdue     decimal.Decimal        `json:"totalOverdue"`
	ThisMonthRevenue decimal.Decimal        `json:"thisMonthRevenue"`
	LastMonthRevenue decimal.Decimal        `json:"lastMonthRevenue"`
	RevenueChange    decimal.Decimal        `json:"revenueChange"` // percent
	RevenueChart     []MonthlyRevenue       `json:"revenueChart"`
	InvoiceCounts    map[InvoiceStatus]int  `json:"invoiceCounts"`
	ContractCounts   map[ContractStatus]int `json:"contractCounts"`
	RecentInvoices   []Invoice              `json:"recentInvoices"`
	ClientCount      int                    `json:"clientCount"`
}

// RecentInvoiceLimit is how many of the newest invoices the dashboard lists.
const RecentInvoiceLimit = 5

const chartMonths = 6

// InvoiceTotal aggregates an owner's invoices of one status created in one calendar month.
// Month is the first instant of that month in UTC.
type InvoiceTotal struct {
	Status InvoiceStatus
	Month  time.Time
	Count  int
	Amount decimal.Decimal
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// outstanding reports whether an invoice of status still awaits payment.
func outstanding(status InvoiceStatus) bool {
	return status == InvoiceStatusPending || status == InvoiceStatusApproved
}

// BuildDashboard computes the dashboard from per-month invoice totals covering every invoice
// of the owner. Revenue is attributed to the month the invoice was created in.
// recent holds the newest invoices, newest first.
func BuildDashboard(totals []InvoiceTotal, contractCounts map[ContractStatus]int, recent []Invoice, clientCount int, now time.Time) Dashboard {
	d := Dashboard{
		TotalRevenue:     decimal.Zero,
		TotalPending:     decimal.Zero,
		TotalOverdue:     decimal.Zero,
		ThisMonthRevenue: decimal.Zero,
		LastMonthRevenue: decimal.Zero,
		RevenueChange:    decimal.Zero,
		InvoiceCounts:    map[InvoiceStatus]int{},
		ContractCounts:   map[ContractStatus]int{},
		ClientCount:      clientCount,
	}

	now = now.UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	chart := make([]MonthlyRevenue, chartMonths)
	for i := range chart {
		start := thisMonth.AddDate(0, i-(chartMonths-1), 0)
		chart[i] = MonthlyRevenue{Month: start.Format("Jan"), Start: start, Paid: decimal.Zero, Pending: decimal.Zero}
	}

	for _, t := range totals {
		d.InvoiceCounts[t.Status] += t.Count
		switch {
		case t.Status == InvoiceStatusPaid:
			d.TotalRevenue = d.TotalRevenue.Add(t.Amount)
			if sameMonth(t.Month, thisMonth) {
				d.ThisMonthRevenue = d.ThisMonthRevenue.Add(t.Amount)
			} else if sameMonth(t.Month, lastMonth) {
				d.LastMonthRevenue = d.LastMonthRevenue.Add(t.Amount)
			}
		case outstanding(t.Status):
			d.TotalPending = d.TotalPending.Add(t.Amount)
		case t.Status == InvoiceStatusOverdue:
			d.TotalOverdue = d.TotalOverdue.Add(t.Amount)
		}

		for i := range chart {
			if !sameMonth(t.Month, chart[i].Start) {
				continue
			}
			switch {
			case t.Status == InvoiceStatusPaid:
				chart[i].Paid = chart[i].Paid.Add(t.Amount)
			case outstanding(t.Status), t.Status == InvoiceStatusOverdue:
				chart[i].Pending = chart[i].Pending.Add(t.Amount)
			}
		}
	}
	d.RevenueChart = chart

	switch {
	case d.LastMonthRevenue.IsPositive():
		d.RevenueChange = d.ThisMonthRevenue.Sub(d.LastMonthRevenue).
			Div(d.LastMonthRevenue).Mul(decimal.NewFromInt(100)).Round(1)
	case d.ThisMonthRevenue.IsPositive():
		d.RevenueChange = decimal.NewFromInt(100)
	}

	for status, n := range contractCounts {
		d.ContractCounts[status] += n
	}

	n := RecentInvoiceLimit
	if len(recent) < n {
		n = len(recent)
	}
	d.RecentInvoices = append([]Invoice{}, recent[:n]...)
	return d
}
