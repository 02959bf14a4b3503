package services

import (
	"context"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
)

// DashboardSvc builds the owner's overview.
type DashboardSvc interface {
	GetDashboard(ctx context.Context, ownerID string) (*domain.Dashboard, error)
}
