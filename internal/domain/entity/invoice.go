package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusSent      = "SENT"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusCancelled = "CANCELLED"
)

// invoiceTransitions estados destino permitidos desde cada estado. PAID y CANCELLED son terminales.
var invoiceTransitions = map[string][]string{
	InvoiceStatusDraft: {InvoiceStatusSent, InvoiceStatusCancelled},
	InvoiceStatusSent:  {InvoiceStatusPaid, InvoiceStatusCancelled},
}

// OpenInvoiceStatuses estados que cuentan como factura abierta en el dashboard.
var OpenInvoiceStatuses = []string{InvoiceStatusDraft, InvoiceStatusSent}

// IsValidInvoiceStatus indica si s es un estado conocido.
func IsValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice representa la cabecera de una factura con sus posiciones.
type Invoice struct {
	ID          string
	Number      string // <prefijo>-<consecutivo>
	CustomerID  string
	InvoiceDate time.Time
	ServiceDate time.Time
	DueDate     time.Time
	Discount    decimal.Decimal
	Shipping    decimal.Decimal
	Status      string
	NetTotal    decimal.Decimal // subtotal - descuento
	TaxRate     decimal.Decimal // porcentaje congelado al crear (0 si el IVA está desactivado)
	TaxTotal    decimal.Decimal
	GrossTotal  decimal.Decimal // neto + impuesto + envío
	Notes       string
	Items       []InvoiceItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanTransitionTo indica si la factura puede pasar al estado next.
func (i *Invoice) CanTransitionTo(next string) bool {
	for _, s := range invoiceTransitions[i.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsEditable solo los borradores pueden eliminarse o modificarse.
func (i *Invoice) IsEditable() bool {
	return i.Status == InvoiceStatusDraft
}

// Subtotal suma de las líneas.
func (i *Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range i.Items {
		sum = sum.Add(it.LineTotal)
	}
	return sum
}

// ApplyTotals calcula LineTotal de cada posición y NetTotal, TaxTotal y GrossTotal de la cabecera.
// El llamador valida antes que el descuento no supere el subtotal.
func (i *Invoice) ApplyTotals() {
	hundred := decimal.NewFromInt(100)
	for k := range i.Items {
		it := &i.Items[k]
		it.LineTotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
	}
	net := i.Subtotal().Sub(i.Discount)
	i.NetTotal = net.Round(2)
	i.TaxTotal = net.Mul(i.TaxRate).Div(hundred).Round(2)
	i.GrossTotal = i.NetTotal.Add(i.TaxTotal).Add(i.Shipping).Round(2)
}

// OversizedAmount devuelve el campo del primer importe calculado que no cabe en el almacén,
// o "" si todos caben. Se llama después de ApplyTotals.
func (i *Invoice) OversizedAmount() string {
	for k, it := range i.Items {
		if !AmountFits(it.LineTotal) {
			return fmt.Sprintf("items[%d].line_total", k)
		}
	}
	switch {
	case !AmountFits(i.Subtotal()):
		return "subtotal"
	case !AmountFits(i.NetTotal):
		return "net_total"
	case !AmountFits(i.TaxTotal):
		return "tax_total"
	case !AmountFits(i.GrossTotal):
		return "gross_total"
	}
	return ""
}
