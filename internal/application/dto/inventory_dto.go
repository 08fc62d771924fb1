package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovementRequest body para POST /api/products/:id/movements.
// IN y OUT llevan cantidad positiva; ADJUSTMENT admite signo (positivo suma, negativo resta).
type StockMovementRequest struct {
	Type     string           `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity int              `json:"quantity" validate:"ne=0,min=-2147483647,max=2147483647"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty" validate:"omitempty,min=0,max=9999999999.99"`
	Reason   string           `json:"reason" validate:"omitempty,max=300"`
}

// StockMovementResponse movimiento registrado.
type StockMovementResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Type       string          `json:"type"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	StockAfter int             `json:"stock_after"`
	Reason     string          `json:"reason"`
	CreatedBy  string          `json:"created_by,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ReplenishmentSuggestionDTO sugerencia de pedido para un producto bajo su stock mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	Supplier           string          `json:"supplier"`
	CurrentStock       int             `json:"current_stock"`
	MinStock           int             `json:"min_stock"`
	IdealStock         int             `json:"ideal_stock"`          // ceil(MinStock * 1.5)
	SuggestedOrderQty  int             `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // precio de compra (costo promedio)
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	GrossMarginPct     decimal.Decimal `json:"gross_margin_pct"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
