package dto

import (
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardResponse is the owner's overview page.
type DashboardResponse struct {
	TotalRevenue     decimal.Decimal               `json:"totalRevenue"`
	TotalPending     decimal.Decimal               `json:"totalPending"`
	TotalOverdue     decimal.Decimal               `json:"totalOverdue"`
	ThisMonthRevenue decimal.Decimal               `json:"thisMonthRevenue"`
	LastMonthRevenue decimal.Decimal               `json:"lastMonthRevenue"`
	RevenueChange    decimal.Decimal               `json:"revenueChange"`
	RevenueChart     []domain.MonthlyRevenue       `json:"revenueChart"`
	InvoiceCounts    map[domain.InvoiceStatus]int  `json:"invoiceCounts"`
	ContractCounts   map[domain.ContractStatus]int `json:"contractCounts"`
	ClientCount      int                           `json:"clientCount"`
	RecentInvoices   []InvoiceResponse             `json:"recentInvoices"`
}

// OverdueRefreshResponse reports how many invoices were flipped to overdue.
type OverdueRefreshResponse struct {
	Updated int64 `json:"updated"`
}

func ToDashboardResponse(d *domain.Dashboard, publicURL string) DashboardResponse {
	recent := make([]InvoiceResponse, len(d.RecentInvoices))
	for i := range d.RecentInvoices {
		recent[i] = ToInvoiceResponse(&d.RecentInvoices[i], publicURL)
	}
	return DashboardResponse{
		TotalRevenue:     d.TotalRevenue,
		TotalPending:     d.TotalPending,
		TotalOverdue:     d.TotalOverdue,
		ThisMonthRevenue: d.ThisMonthRevenue,
		LastMonthRevenue: d.LastMonthRevenue,
		RevenueChange:    d.RevenueChange,
		RevenueChart:     d.RevenueChart,
		InvoiceCounts:    d.InvoiceCounts,
		ContractCounts:   d.ContractCounts,
		ClientCount:      d.ClientCount,
		RecentInvoices:   recent,
	}
}
