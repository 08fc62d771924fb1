package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func TestProduct_IsLowStock(t *testing.T) {
	cases := []struct {
		current, min int
		low          bool
	}{
		{5, 10, true},
		{10, 10, false}, // igual al mínimo no es stock bajo
		{11, 10, false},
		{0, 0, false},
		{0, 1, true},
	}
	for _, c := range cases {
		p := entity.Product{CurrentStock: c.current, MinStock: c.min}
		assert.Equal(t, c.low, p.IsLowStock(), "stock %d / mínimo %d", c.current, c.min)
	}
}

func TestInvoice_Transiciones(t *testing.T) {
	inv := entity.Invoice{Status: entity.InvoiceStatusDraft}
	assert.True(t, inv.CanTransitionTo(entity.InvoiceStatusSent))
	assert.True(t, inv.CanTransitionTo(entity.InvoiceStatusCancelled))
	assert.False(t, inv.CanTransitionTo(entity.InvoiceStatusPaid), "no se paga un borrador sin enviarlo")

	inv.Status = entity.InvoiceStatusSent
	assert.True(t, inv.CanTransitionTo(entity.InvoiceStatusPaid))
	assert.False(t, inv.CanTransitionTo(entity.InvoiceStatusDraft))

	for _, terminal := range []string{entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled} {
		inv.Status = terminal
		for _, next := range []string{entity.InvoiceStatusDraft, entity.InvoiceStatusSent, entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled} {
			assert.False(t, inv.CanTransitionTo(next), "%s -> %s", terminal, next)
		}
	}
}

func TestInvoice_ApplyTotals(t *testing.T) {
	inv := entity.Invoice{
		Discount: decimal.RequireFromString("5.00"),
		Shipping: decimal.RequireFromString("4.90"),
		TaxRate:  decimal.NewFromInt(19),
		Items: []entity.InvoiceItem{
			{Title: "Vela", Quantity: 2, UnitPrice: decimal.RequireFromString("8.90")},
			{Title: "Cesta", Quantity: 1, UnitPrice: decimal.RequireFromString("24.90")},
		},
	}
	inv.ApplyTotals()

	assert.True(t, inv.Items[0].LineTotal.Equal(decimal.RequireFromString("17.80")))
	assert.True(t, inv.NetTotal.Equal(decimal.RequireFromString("37.70")), inv.NetTotal.String())
	assert.True(t, inv.TaxTotal.Equal(decimal.RequireFromString("7.16")), inv.TaxTotal.String())
	assert.True(t, inv.GrossTotal.Equal(decimal.RequireFromString("49.76")), inv.GrossTotal.String())
}

func TestInvoice_ApplyTotalsSinIVA(t *testing.T) {
	inv := entity.Invoice{
		TaxRate: decimal.Zero,
		Items:   []entity.InvoiceItem{{Title: "Jabón", Quantity: 3, UnitPrice: decimal.RequireFromString("18.50")}},
	}
	inv.ApplyTotals()

	assert.True(t, inv.TaxTotal.IsZero())
	assert.True(t, inv.GrossTotal.Equal(decimal.RequireFromString("55.50")))
}

func TestSettings_EffectiveTaxRate(t *testing.T) {
	s := entity.DefaultSettings(testNow)
	assert.True(t, s.EffectiveTaxRate().IsZero(), "IVA desactivado por defecto")

	s.TaxEnabled = true
	assert.True(t, s.EffectiveTaxRate().Equal(decimal.NewFromInt(19)))
}
