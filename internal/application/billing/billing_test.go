package billing_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/billing"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
)

type fixture struct {
	store     *memory.Store
	customers *billing.CustomerUseCase
	invoices  *billing.InvoiceUseCase
	customer  *dto.CustomerResponse
	productID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	v := validation.New()

	settings := entity.DefaultSettings(testNow)
	settings.TaxEnabled = true
	settings.TaxRate = decimal.NewFromInt(19)
	require.NoError(t, store.Settings().EnsureDefault(ctx, settings))

	f := &fixture{
		store:     store,
		customers: billing.NewCustomerUseCase(store.Customers(), v),
		invoices:  billing.NewInvoiceUseCase(store.TxRunner(), store.Invoices(), store.Customers(), store.Products(), v),
	}
	c, err := f.customers.Create(ctx, dto.CustomerRequest{Name: "Ana Pérez", Email: "ana@example.com"})
	require.NoError(t, err)
	f.customer = c

	f.productID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: f.productID, Name: "Taladro", SalePrice: decimal.NewFromInt(80)}))
	return f
}

func (f *fixture) request() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CustomerID:  f.customer.ID,
		InvoiceDate: "2026-02-10",
		Discount:    decimal.RequireFromString("2.30"),
		Shipping:    decimal.RequireFromString("4.90"),
		Items: []dto.InvoiceItemRequest{
			{Title: "Tornillos", Quantity: 4, UnitPrice: decimal.RequireFromString("2.50")},
			{ProductID: f.productID, Title: "Taladro", Quantity: 1, UnitPrice: decimal.RequireFromString("30.00")},
		},
	}
}

// ── clientes ─────────────────────────────────────────────────────────────────

func TestCustomer_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.customers.Create(ctx, dto.CustomerRequest{Name: "", Email: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	upd, err := f.customers.Update(ctx, f.customer.ID, dto.CustomerRequest{Name: "Ana Pérez Gil", City: "Sevilla"})
	require.NoError(t, err)
	assert.Equal(t, "Sevilla", upd.City)

	b, err := f.customers.Create(ctx, dto.CustomerRequest{Name: "Bruno"})
	require.NoError(t, err)
	require.NoError(t, f.customers.Delete(ctx, b.ID))

	_, err = f.customers.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomer_DeleteConFacturas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.invoices.Create(ctx, f.request())
	require.NoError(t, err)
	assert.ErrorIs(t, f.customers.Delete(ctx, f.customer.ID), domain.ErrCustomerInUse)
}

func TestCustomer_CreateBatch(t *testing.T) {
	f := newFixture(t)

	res, err := f.customers.CreateBatch(context.Background(), []dto.CustomerRequest{
		{Name: "Carlos", Email: "carlos@example.com"},
		{Name: "", Email: "sin-nombre@example.com"}, // inválida
		{Name: "Juan Pérez"},
		{Name: "Juan Pérez"}, // homónimo: otro cliente
		{Name: "Ana Pérez", Email: "ana@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Created)
	assert.Equal(t, 1, res.Skipped)

	list, err := f.customers.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

// flakyCustomerRepo falla en Create según el nombre del cliente.
type flakyCustomerRepo struct {
	repository.CustomerRepository
	failures map[string]error
}

func (r *flakyCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if err, ok := r.failures[c.Name]; ok {
		return err
	}
	return r.CustomerRepository.Create(ctx, c)
}

func TestCustomer_CreateBatchConflictoSeOmite(t *testing.T) {
	store := memory.NewStore()
	repo := &flakyCustomerRepo{
		CustomerRepository: store.Customers(),
		failures:           map[string]error{"Repetido": fmt.Errorf("insert customer: %w", domain.ErrConflict)},
	}
	uc := billing.NewCustomerUseCase(repo, validation.New())

	res, err := uc.CreateBatch(context.Background(), []dto.CustomerRequest{{Name: "Uno"}, {Name: "Repetido"}, {Name: "Dos"}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Skipped)
}

func TestCustomer_CreateBatchErrorDelAlmacen(t *testing.T) {
	store := memory.NewStore()
	outage := errors.New("connection refused")
	repo := &flakyCustomerRepo{
		CustomerRepository: store.Customers(),
		failures:           map[string]error{"Dos": outage},
	}
	uc := billing.NewCustomerUseCase(repo, validation.New())

	res, err := uc.CreateBatch(context.Background(), []dto.CustomerRequest{{Name: "Uno"}, {Name: "Dos"}, {Name: "Tres"}})
	require.ErrorIs(t, err, outage)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 0, res.Skipped)
}

// ── facturas ─────────────────────────────────────────────────────────────────

func TestInvoice_ImportesFueraDeRango(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.request()
	in.Items[0].UnitPrice = decimal.RequireFromString("100000000000")
	_, err := f.invoices.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = f.request()
	in.Items[0].Quantity = 3000000000
	_, err = f.invoices.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// cada campo cabe, pero la línea no
	in = f.request()
	in.Items[0].UnitPrice = decimal.RequireFromString("9999999999.99")
	in.Items[0].Quantity = 2
	_, err = f.invoices.Create(ctx, in)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items[0].line_total", verr.Fields[0].Field)

	// el neto cabe y el IVA lo desborda: se rechaza y el consecutivo no se consume
	in = f.request()
	in.Discount = decimal.Zero
	in.Shipping = decimal.Zero
	in.Items = []dto.InvoiceItemRequest{{Title: "Máquina", Quantity: 1, UnitPrice: decimal.RequireFromString("9000000000.00")}}
	_, err = f.invoices.Create(ctx, in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "gross_total", verr.Fields[0].Field)

	inv, err := f.invoices.Create(ctx, f.request())
	require.NoError(t, err)
	assert.Equal(t, "FAC-0001", inv.Number)
}

func TestInvoice_CreateTotalesYNumero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.invoices.Create(ctx, f.request())
	require.NoError(t, err)

	assert.Equal(t, "FAC-0001", inv.Number)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, "Ana Pérez", inv.CustomerName)
	// subtotal 40.00, neto 37.70, IVA 19% 7.16, envío 4.90
	assert.Equal(t, "37.7", inv.NetTotal.String())
	assert.Equal(t, "7.16", inv.TaxTotal.String())
	assert.Equal(t, "49.76", inv.GrossTotal.String())
	assert.Equal(t, "2026-02-24", inv.DueDate, "vencimiento por defecto a 14 días")
	require.Len(t, inv.Items, 2)
	assert.Equal(t, 1, inv.Items[0].Position)
	assert.Equal(t, "10", inv.Items[0].LineTotal.String())

	second, err := f.invoices.Create(ctx, f.request())
	require.NoError(t, err)
	assert.Equal(t, "FAC-0002", second.Number)
}

func TestInvoice_NumeracionConcurrente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	numbers := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inv, err := f.invoices.Create(ctx, f.request())
			if assert.NoError(t, err) {
				numbers <- inv.Number
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for num := range numbers {
		assert.False(t, seen[num], "número repetido %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}

func TestInvoice_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.request()
	req.Discount = decimal.NewFromInt(1000)
	_, err := f.invoices.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrValidation, "descuento mayor que el subtotal")

	req = f.request()
	req.CustomerID = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	_, err = f.invoices.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrValidation, "cliente inexistente")

	req = f.request()
	req.Items[1].ProductID = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	_, err = f.invoices.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrValidation, "producto inexistente")

	req = f.request()
	req.DueDate = "2026-01-01"
	_, err = f.invoices.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrValidation, "vencimiento anterior a la fecha")

	// ninguna de las anteriores consumió consecutivo
	inv, err := f.invoices.Create(ctx, f.request())
	require.NoError(t, err)
	assert.Equal(t, "FAC-0001", inv.Number)
}

func TestInvoice_CicloDeVida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.invoices.Create(ctx, f.request())
	require.NoError(t, err)

	_, err = f.invoices.UpdateStatus(ctx, inv.ID, dto.UpdateInvoiceStatusRequest{Status: entity.InvoiceStatusPaid})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "DRAFT no pasa directo a PAID")

	sent, err := f.invoices.UpdateStatus(ctx, inv.ID, dto.UpdateInvoiceStatusRequest{Status: entity.InvoiceStatusSent})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusSent, sent.Status)

	assert.ErrorIs(t, f.invoices.Delete(ctx, inv.ID), domain.ErrInvoiceNotEditable)

	paid, err := f.invoices.UpdateStatus(ctx, inv.ID, dto.UpdateInvoiceStatusRequest{Status: entity.InvoiceStatusPaid})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, paid.Status)

	_, err = f.invoices.UpdateStatus(ctx, inv.ID, dto.UpdateInvoiceStatusRequest{Status: entity.InvoiceStatusCancelled})
	assert.ErrorIs(t, err, domain.ErrConflict, "PAID es terminal")

	_, err = f.invoices.UpdateStatus(ctx, inv.ID, dto.UpdateInvoiceStatusRequest{Status: "ARCHIVED"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInvoice_ListYDeleteBorrador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	older := f.request()
	older.InvoiceDate = "2026-01-05"
	a, err := f.invoices.Create(ctx, older)
	require.NoError(t, err)
	b, err := f.invoices.Create(ctx, f.request())
	require.NoError(t, err)

	list, err := f.invoices.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID, "fecha de factura descendente")
	assert.Equal(t, "Ana Pérez", list[1].CustomerName)
	assert.Empty(t, list[0].Items)

	require.NoError(t, f.invoices.Delete(ctx, a.ID))
	_, err = f.invoices.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoice_SinIVA(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s, err := f.store.Settings().Get(ctx)
	require.NoError(t, err)
	s.TaxEnabled = false
	require.NoError(t, f.store.Settings().Update(ctx, s))

	inv, err := f.invoices.Create(ctx, f.request())
	require.NoError(t, err)
	assert.True(t, inv.TaxRate.IsZero())
	assert.True(t, inv.TaxTotal.IsZero())
	assert.Equal(t, "42.6", inv.GrossTotal.String())
}
