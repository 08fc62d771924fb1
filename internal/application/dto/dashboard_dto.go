package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Los nombres en camelCase los consume el front-end existente tal cual.
type DashboardStatsDTO struct {
	TotalProducts    int             `json:"totalProducts"`
	LowStockProducts int             `json:"lowStockProducts"`
	TotalCustomers   int             `json:"totalCustomers"`
	OpenInvoices     int             `json:"openInvoices"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
}
