package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/billing"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

var testNow = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

type fakeGenerator struct{ got billing.InvoiceDocument }

func (g *fakeGenerator) GenerateInvoicePDF(_ context.Context, doc billing.InvoiceDocument) ([]byte, error) {
	g.got = doc
	return []byte("%PDF-1.4"), nil
}

func TestPDF_Download(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv, err := f.invoices.Create(ctx, f.request())
	require.NoError(t, err)

	gen := &fakeGenerator{}
	uc := billing.NewPDFUseCase(f.store.Invoices(), f.store.Customers(), f.store.Settings(), gen)

	pdf, name, err := uc.DownloadInvoicePDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "factura_FAC-0001.pdf", name)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Len(t, gen.got.Invoice.Items, 2)
	assert.Equal(t, "Ana Pérez", gen.got.Customer.Name)
	assert.Equal(t, "FAC", gen.got.Issuer.InvoicePrefix)

	_, _, err = uc.DownloadInvoicePDF(ctx, "3f2504e0-4f89-11d3-9a0c-0305e82c3301")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
