// Package analytics contiene los casos de uso de solo lectura para el dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// DashboardUseCase calcula las cifras del dashboard en cada llamada (sin caché).
//
// Fuente de datos: DashboardRepository, que lee las cinco cifras en una sola instantánea
// para que sean coherentes entre sí.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Stats devuelve totalProducts, lowStockProducts, totalCustomers, openInvoices y totalRevenue.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	c, err := uc.repo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return &dto.DashboardStatsDTO{
		TotalProducts:    c.TotalProducts,
		LowStockProducts: c.LowStockProducts,
		TotalCustomers:   c.TotalCustomers,
		OpenInvoices:     c.OpenInvoices,
		TotalRevenue:     c.TotalRevenue.Round(2),
	}, nil
}
