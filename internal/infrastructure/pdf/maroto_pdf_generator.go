// Package pdf genera la representación gráfica de una factura con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa emisora       │  N° Factura + Fechas        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email / NIF                       │
//	│  CLIENTE: Nombre + empresa + dirección                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Pos | Descripción | Cant | P.Unit | Importe          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Neto / IVA / Envío / TOTAL  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: datos bancarios + QR de pago + notas                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/jhoicas/backoffice-api/internal/application/billing"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer  *message.Printer
	currency string
}

// NewMarotoPDFGenerator construye el generador. locale es una etiqueta BCP 47 ("es", "de-DE");
// si no se reconoce se usa español. currency es el código ISO que acompaña los importes.
func NewMarotoPDFGenerator(locale, currency string) *MarotoPDFGenerator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	if currency == "" {
		currency = "EUR"
	}
	return &MarotoPDFGenerator{printer: message.NewPrinter(tag), currency: currency}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc appbilling.InvoiceDocument) ([]byte, error) {
	inv, customer, issuer := doc.Invoice, doc.Customer, doc.Issuer
	if inv == nil || customer == nil || issuer == nil {
		return nil, fmt.Errorf("pdf: documento incompleto")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.Number, true).
		WithAuthor(issuer.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(inv, issuer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(issuerRow(issuer))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.itemRows(inv.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRows(inv)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRows(inv, issuer)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(inv *entity.Invoice, issuer *entity.Settings) core.Row {
	dates := "Fecha: " + inv.InvoiceDate.Format("02/01/2006")
	if !inv.ServiceDate.IsZero() {
		dates += "   Servicio: " + inv.ServiceDate.Format("02/01/2006")
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(issuer.CompanyName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(issuer.TaxNumber, ""), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6}),
			text.New(dates, props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
			text.New("Vencimiento: "+inv.DueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

func issuerRow(s *entity.Settings) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EMISOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s   |   Tel: %s   |   Email: %s",
				nonEmpty(joinNonEmpty(", ", s.Address, strings.TrimSpace(s.PostalCode+" "+s.City), s.Country), "—"),
				nonEmpty(s.Phone, "—"),
				nonEmpty(s.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func customerRow(c *entity.Customer) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(joinNonEmpty(" · ", c.Name, c.Company), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(nonEmpty(joinNonEmpty(", ", c.Address, strings.TrimSpace(c.PostalCode+" "+c.City), c.Country), "—"),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New(fmt.Sprintf("NIF: %s   |   Email: %s", nonEmpty(c.TaxID, "—"), nonEmpty(c.Email, "—")),
				props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Pos.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Cant.", 1, align.Center),
		h("Precio unit.", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

func (g *MarotoPDFGenerator) itemRows(items []entity.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Position), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.Title, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(g.printer.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.Money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.Money(it.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func (g *MarotoPDFGenerator) totalRows(inv *entity.Invoice) []core.Row {
	total := func(label, value string, strong bool) core.Row {
		p := props.Text{Size: 9, Align: align.Right, Right: 1}
		if strong {
			p.Style = fontstyle.Bold
			p.Size = 10
			p.Color = colorPrimary
		}
		lp := p
		lp.Right = 2
		return row.New(5).Add(
			col.New(6),
			col.New(3).Add(text.New(label, lp)),
			col.New(3).Add(text.New(value, p)),
		)
	}

	rows := []core.Row{total("Subtotal:", g.Money(inv.Subtotal()), false)}
	if !inv.Discount.IsZero() {
		rows = append(rows, total("Descuento:", "-"+g.Money(inv.Discount), false))
	}
	rows = append(rows, total("Neto:", g.Money(inv.NetTotal), false))
	if !inv.TaxRate.IsZero() {
		rows = append(rows, total(g.printer.Sprintf("IVA %s%%:", inv.TaxRate.String()), g.Money(inv.TaxTotal), false))
	}
	if !inv.Shipping.IsZero() {
		rows = append(rows, total("Envío:", g.Money(inv.Shipping), false))
	}
	rows = append(rows, total("TOTAL:", g.Money(inv.GrossTotal), true))
	return rows
}

func (g *MarotoPDFGenerator) footerRows(inv *entity.Invoice, s *entity.Settings) []core.Row {
	var rows []core.Row
	if inv.Notes != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New(inv.Notes, props.Text{Size: 8, Top: 2}),
		)))
	}
	if s.IBAN == "" {
		return rows
	}
	bank := fmt.Sprintf("%s\nIBAN: %s\nBIC: %s\nConcepto: %s",
		nonEmpty(s.Bank, s.CompanyName), s.IBAN, nonEmpty(s.BIC, "—"), inv.Number)
	rows = append(rows, row.New(36).Add(
		col.New(3).Add(code.NewQr(PaymentQRPayload(s, inv), props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("DATOS DE PAGO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 3}),
			text.New(bank, props.Text{Size: 8, Top: 7, Left: 3, Color: colorGray}),
		),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Money formatea un importe con separadores del locale y el código de moneda.
func (g *MarotoPDFGenerator) Money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return g.printer.Sprintf("%.2f", f) + " " + g.currency
}

// PaymentQRPayload construye el payload EPC (transferencia SEPA) que leen las apps bancarias.
func PaymentQRPayload(s *entity.Settings, inv *entity.Invoice) string {
	return strings.Join([]string{
		"BCD", "002", "1", "SCT",
		s.BIC,
		truncate(s.CompanyName, 70),
		strings.ReplaceAll(s.IBAN, " ", ""),
		"EUR" + inv.GrossTotal.StringFixed(2),
		"",
		"",
		truncate(inv.Number, 140),
	}, "\n")
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
