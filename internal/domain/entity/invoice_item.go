package entity

import "github.com/shopspring/decimal"

// InvoiceItem representa una posición de la factura. ProductID es opcional (servicios, textos libres).
type InvoiceItem struct {
	ID        string
	InvoiceID string
	ProductID string
	Position  int
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}
