package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices.
// Las fechas van en formato AAAA-MM-DD. Sin due_date se usa invoice_date + días por defecto.
type CreateInvoiceRequest struct {
	CustomerID  string               `json:"customer_id" validate:"required,uuid"`
	InvoiceDate string               `json:"invoice_date" validate:"required,datetime=2006-01-02"`
	ServiceDate string               `json:"service_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate     string               `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Discount    decimal.Decimal      `json:"discount" validate:"min=0,max=9999999999.99"`
	Shipping    decimal.Decimal      `json:"shipping" validate:"min=0,max=9999999999.99"`
	Notes       string               `json:"notes" validate:"omitempty,max=2000"`
	Items       []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceItemRequest posición de factura. ProductID es opcional (servicios o texto libre).
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id" validate:"omitempty,uuid"`
	Title     string          `json:"title" validate:"required,min=1,max=300"`
	Quantity  int             `json:"quantity" validate:"min=1,max=2147483647"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0,max=9999999999.99"`
}

// UpdateInvoiceStatusRequest body para PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT SENT PAID CANCELLED"`
}

// InvoiceResponse factura con posiciones.
type InvoiceResponse struct {
	ID           string                `json:"id"`
	Number       string                `json:"number"`
	CustomerID   string                `json:"customer_id"`
	CustomerName string                `json:"customer_name"`
	InvoiceDate  string                `json:"invoice_date"`
	ServiceDate  string                `json:"service_date,omitempty"`
	DueDate      string                `json:"due_date"`
	Status       string                `json:"status"`
	Discount     decimal.Decimal       `json:"discount"`
	Shipping     decimal.Decimal       `json:"shipping"`
	NetTotal     decimal.Decimal       `json:"net_total"`
	TaxRate      decimal.Decimal       `json:"tax_rate"`
	TaxTotal     decimal.Decimal       `json:"tax_total"`
	GrossTotal   decimal.Decimal       `json:"gross_total"`
	Notes        string                `json:"notes"`
	Items        []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// InvoiceItemResponse posición en la respuesta.
type InvoiceItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id,omitempty"`
	Position  int             `json:"position"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}
