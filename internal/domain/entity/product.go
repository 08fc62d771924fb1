package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del inventario con su stock actual y mínimo.
type Product struct {
	ID            string
	SKU           string // opcional; único cuando no está vacío
	Name          string
	Description   string
	Category      string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	CurrentStock  int
	MinStock      int
	Location      string
	Supplier      string
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el stock actual está por debajo del mínimo del propio producto.
// Igual al mínimo no cuenta como bajo.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock < p.MinStock
}
