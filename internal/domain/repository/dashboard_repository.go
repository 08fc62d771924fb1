package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardCounts cifras crudas del dashboard, leídas en una sola instantánea.
type DashboardCounts struct {
	TotalProducts    int
	LowStockProducts int
	TotalCustomers   int
	OpenInvoices     int
	TotalRevenue     decimal.Decimal // cero (nunca nulo) si no hay facturas pagadas
}

// DashboardRepository consultas de solo lectura para el dashboard.
type DashboardRepository interface {
	Counts(ctx context.Context) (DashboardCounts, error)
}
