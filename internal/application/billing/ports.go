package billing

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// InvoicePDFGenerator puerto de salida para la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}

// InvoiceDocument todo lo que necesita el generador: factura con posiciones, cliente y emisor.
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Customer *entity.Customer
	Issuer   *entity.Settings
}
