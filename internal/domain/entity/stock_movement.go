package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste por recuento
)

// StockMovement registro inmutable de un cambio en current_stock de un producto.
type StockMovement struct {
	ID         string
	ProductID  string
	Type       string
	Quantity   int // positivo entrada, negativo salida
	UnitCost   decimal.Decimal
	TotalCost  decimal.Decimal
	StockAfter int
	Reason     string
	CreatedBy  string // id del usuario; vacío si no hay sesión (seed)
	CreatedAt  time.Time
}
