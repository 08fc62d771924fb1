package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura del dashboard.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// Counts lee las cinco cifras en una sola sentencia. Los sub-selects escalares comparten la
// instantánea de la sentencia, así que las cifras son coherentes entre sí.
func (r *DashboardRepo) Counts(ctx context.Context) (repository.DashboardCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM products WHERE current_stock < min_stock),
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM invoices WHERE status = ANY($1)),
			(SELECT COALESCE(SUM(gross_total), 0) FROM invoices WHERE status = $2)`
	var c repository.DashboardCounts
	err := r.pool.QueryRow(ctx, query, entity.OpenInvoiceStatuses, entity.InvoiceStatusPaid).Scan(
		&c.TotalProducts, &c.LowStockProducts, &c.TotalCustomers, &c.OpenInvoices, &c.TotalRevenue,
	)
	if err != nil {
		return repository.DashboardCounts{}, fmt.Errorf("dashboard counts: %w", err)
	}
	return c, nil
}
