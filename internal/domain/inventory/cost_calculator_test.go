package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/domain/inventory"
)

func TestCostCalculator(t *testing.T) {
	d := decimal.RequireFromString
	cases := []struct {
		name     string
		stock    int
		cost     decimal.Decimal
		qty      int
		unitCost decimal.Decimal
		want     string
	}{
		{"sin stock previo", 0, d("0"), 10, d("2.50"), "2.5"},
		{"promedio", 10, d("2.00"), 10, d("4.00"), "3"},
		{"redondeo", 3, d("1.00"), 1, d("2.00"), "1.25"},
		{"tres tercios", 2, d("1.00"), 1, d("2.00"), "1.33"},
		{"suma cero", 0, d("5"), 0, d("5"), "0"},
	}
	for _, tc := range cases {
		got := inventory.CostCalculator(tc.stock, tc.cost, tc.qty, tc.unitCost)
		assert.True(t, got.Equal(d(tc.want)), "%s: %s", tc.name, got)
	}
}
