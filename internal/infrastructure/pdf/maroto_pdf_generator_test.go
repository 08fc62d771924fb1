package pdf_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/backoffice-api/internal/application/billing"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
)

func sampleDocument() appbilling.InvoiceDocument {
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	issuer := entity.DefaultSettings(day)
	issuer.CompanyName = "Ferretería Sol"
	issuer.IBAN = "ES91 2100 0418 4502 0005 1332"
	issuer.BIC = "CAIXESBBXXX"

	inv := &entity.Invoice{
		ID:          "i1",
		Number:      "FAC-0007",
		CustomerID:  "c1",
		InvoiceDate: day,
		DueDate:     day.AddDate(0, 0, 14),
		Discount:    decimal.RequireFromString("2.30"),
		Shipping:    decimal.RequireFromString("4.90"),
		Status:      entity.InvoiceStatusDraft,
		TaxRate:     decimal.NewFromInt(19),
		Notes:       "Gracias por su compra",
		Items: []entity.InvoiceItem{
			{Position: 1, Title: "Tornillos", Quantity: 4, UnitPrice: decimal.RequireFromString("2.50")},
			{Position: 2, Title: "Taladro", Quantity: 1, UnitPrice: decimal.RequireFromString("1230.00")},
		},
	}
	inv.ApplyTotals()
	return appbilling.InvoiceDocument{
		Invoice:  inv,
		Customer: &entity.Customer{ID: "c1", Name: "Ana Pérez", City: "Sevilla"},
		Issuer:   issuer,
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("es", "EUR")

	out, err := g.GenerateInvoicePDF(context.Background(), sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "cabecera PDF")
}

func TestGenerateInvoicePDF_DocumentoIncompleto(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("es", "EUR")
	doc := sampleDocument()
	doc.Customer = nil

	_, err := g.GenerateInvoicePDF(context.Background(), doc)
	assert.Error(t, err)
}

func TestMoney_SegunLocale(t *testing.T) {
	amount := decimal.RequireFromString("1234.5")

	assert.Equal(t, "1,234.50 USD", pdf.NewMarotoPDFGenerator("en", "USD").Money(amount))
	assert.Equal(t, "1.234,50 EUR", pdf.NewMarotoPDFGenerator("de", "EUR").Money(amount))
}

func TestPaymentQRPayload(t *testing.T) {
	doc := sampleDocument()
	payload := pdf.PaymentQRPayload(doc.Issuer, doc.Invoice)

	lines := strings.Split(payload, "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "BCD", lines[0])
	assert.Equal(t, "ES9121000418450200051332", lines[6], "IBAN sin espacios")
	assert.Equal(t, "EUR"+doc.Invoice.GrossTotal.StringFixed(2), lines[7])
	assert.Equal(t, "FAC-0007", lines[10])
}
