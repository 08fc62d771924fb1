package analytics_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/analytics"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
)

func TestStats_AlmacenVacio(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.NewStore().Dashboard())

	s, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, s.TotalProducts)
	assert.Zero(t, s.OpenInvoices)
	assert.True(t, s.TotalRevenue.IsZero(), "sin facturas pagadas la facturación es 0, no nula")
}

func TestStats_Cifras(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	products := []entity.Product{
		{ID: "p1", Name: "Bajo", CurrentStock: 2, MinStock: 5},
		{ID: "p2", Name: "Justo", CurrentStock: 5, MinStock: 5},
		{ID: "p3", Name: "Sobrado", CurrentStock: 50, MinStock: 5},
	}
	for i := range products {
		require.NoError(t, store.Products().Create(ctx, &products[i]))
	}
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: "c1", Name: "Uno"}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: "c2", Name: "Dos"}))

	invoices := []entity.Invoice{
		{ID: "i1", CustomerID: "c1", Status: entity.InvoiceStatusDraft, GrossTotal: decimal.NewFromInt(10)},
		{ID: "i2", CustomerID: "c1", Status: entity.InvoiceStatusSent, GrossTotal: decimal.NewFromInt(20)},
		{ID: "i3", CustomerID: "c2", Status: entity.InvoiceStatusPaid, GrossTotal: decimal.RequireFromString("100.50")},
		{ID: "i4", CustomerID: "c2", Status: entity.InvoiceStatusPaid, GrossTotal: decimal.RequireFromString("49.50")},
		{ID: "i5", CustomerID: "c2", Status: entity.InvoiceStatusCancelled, GrossTotal: decimal.NewFromInt(999)},
	}
	for i := range invoices {
		require.NoError(t, store.Invoices().Create(ctx, &invoices[i]))
	}

	s, err := analytics.NewDashboardUseCase(store.Dashboard()).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalProducts)
	assert.Equal(t, 1, s.LowStockProducts)
	assert.Equal(t, 2, s.TotalCustomers)
	assert.Equal(t, 2, s.OpenInvoices)
	assert.True(t, s.TotalRevenue.Equal(decimal.NewFromInt(150)), "got %s", s.TotalRevenue)
}
