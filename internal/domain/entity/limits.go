package entity

import (
	"math"

	"github.com/shopspring/decimal"
)

// Límites de las columnas del almacén: INTEGER para cantidades, NUMERIC(12,2) para importes
// y NUMERIC(14,2) para el costo total de un movimiento.
const MaxQuantity = math.MaxInt32

var (
	MaxAmount       = decimal.RequireFromString("9999999999.99")
	MaxMovementCost = decimal.RequireFromString("999999999999.99")
)

// AmountFits indica si d cabe en una columna de importe.
func AmountFits(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(MaxAmount)
}
