package services

import (
	"context"
	"fmt"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portsrepo "github.com/dustbill/dustbill_backend/internal/core/ports/repositories"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
)

type dashboardService struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceReader
	contractRepo portsrepo.ContractReader
	clientRepo   portsrepo.ClientReader
}

func NewDashboardService(invoices portsrepo.InvoiceReader, contracts portsrepo.ContractReader, clients portsrepo.ClientReader) portssvc.DashboardSvc {
	return &dashboardService{invoiceRepo: invoices, contractRepo: contracts, clientRepo: clients}
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

// GetDashboard totals every invoice and contract of the owner in SQL and lists the newest invoices.
func (s *dashboardService) GetDashboard(ctx context.Context, ownerID string) (*domain.Dashboard, error) {
	totals, err := s.invoiceRepo.SumInvoicesByMonth(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum invoices for dashboard")
		return nil, fmt.Errorf("failed to sum invoices: %w", err)
	}
	recent, err := s.invoiceRepo.ListInvoices(ctx, ownerID, domain.DocumentFilter{Limit: domain.RecentInvoiceLimit})
	if err != nil {
		s.LogError(ctx, err, "Failed to load recent invoices for dashboard")
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	contractCounts, err := s.contractRepo.CountContractsByStatus(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count contracts for dashboard")
		return nil, fmt.Errorf("failed to count contracts: %w", err)
	}
	clientCount, err := s.clientRepo.CountClients(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count clients for dashboard")
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	d := domain.BuildDashboard(totals, contractCounts, recent, clientCount, s.Now())
	return &d, nil
}
