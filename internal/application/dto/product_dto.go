package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El SKU es opcional.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"omitempty,max=100"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description" validate:"omitempty,max=2000"`
	Category      string          `json:"category" validate:"omitempty,max=100"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"min=0,max=9999999999.99"`
	SalePrice     decimal.Decimal `json:"sale_price" validate:"min=0,max=9999999999.99"`
	CurrentStock  int             `json:"current_stock" validate:"min=0,max=2147483647"`
	MinStock      int             `json:"min_stock" validate:"min=0,max=2147483647"`
	Location      string          `json:"location" validate:"omitempty,max=100"`
	Supplier      string          `json:"supplier" validate:"omitempty,max=200"`
	ImageURL      string          `json:"image_url" validate:"omitempty,url"`
}

// UpdateProductRequest actualización parcial: solo se aplican los campos presentes.
type UpdateProductRequest struct {
	SKU           *string          `json:"sku" validate:"omitempty,max=100"`
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" validate:"omitempty,max=2000"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" validate:"omitempty,min=0,max=9999999999.99"`
	SalePrice     *decimal.Decimal `json:"sale_price" validate:"omitempty,min=0,max=9999999999.99"`
	CurrentStock  *int             `json:"current_stock" validate:"omitempty,min=0,max=2147483647"`
	MinStock      *int             `json:"min_stock" validate:"omitempty,min=0,max=2147483647"`
	Location      *string          `json:"location" validate:"omitempty,max=100"`
	Supplier      *string          `json:"supplier" validate:"omitempty,max=200"`
	ImageURL      *string          `json:"image_url" validate:"omitempty,url"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	CurrentStock  int             `json:"current_stock"`
	MinStock      int             `json:"min_stock"`
	LowStock      bool            `json:"low_stock"`
	Location      string          `json:"location"`
	Supplier      string          `json:"supplier"`
	ImageURL      string          `json:"image_url"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
