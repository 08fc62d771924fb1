// Package memory implementa los puertos de persistencia en memoria.
// Sirve para tests de casos de uso y HTTP, y para demos locales con APP_STORE=memory.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Store guarda todas las tablas en mapas protegidos por un único mutex.
// Las entidades se copian al entrar y al salir para que nadie comparta punteros con el almacén.
// Toda escritura fuera de una transacción espera a que termine la transacción en curso,
// así un rollback nunca pisa cambios confirmados por otra petición.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex // orden de bloqueo: txMu antes que mu
	seq       int64
	users     map[string]entity.User
	products  map[string]storedProduct
	customers map[string]entity.Customer
	invoices  map[string]storedInvoice
	settings  *entity.Settings
	movements []entity.StockMovement
}

type storedProduct struct {
	entity.Product
	seq int64
}

type storedInvoice struct {
	entity.Invoice
	seq int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:     map[string]entity.User{},
		products:  map[string]storedProduct{},
		customers: map[string]entity.Customer{},
		invoices:  map[string]storedInvoice{},
	}
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Customers repositorio de clientes.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

// Invoices repositorio de facturas.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s} }

// Settings repositorio de configuración.
func (s *Store) Settings() *SettingsRepo { return &SettingsRepo{s: s} }

// Dashboard consultas del dashboard.
func (s *Store) Dashboard() *DashboardRepo { return &DashboardRepo{s: s} }

// StockMovements repositorio de movimientos de stock.
func (s *Store) StockMovements() *StockMovementRepo { return &StockMovementRepo{s: s} }

// TxRunner ejecutor de transacciones de facturación y de stock.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// lockWrite toma txMu para escrituras fuera de transacción. Dentro de una transacción
// el TxRunner ya lo tiene.
func (s *Store) lockWrite(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

// productReferenced emula la FK RESTRICT desde invoice_items. Requiere mu tomado.
func (s *Store) productReferenced(productID string) bool {
	for _, inv := range s.invoices {
		for _, it := range inv.Items {
			if it.ProductID == productID {
				return true
			}
		}
	}
	return false
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// ── transacciones ────────────────────────────────────────────────────────────

// TxRunner serializa las transacciones y deshace sus cambios si fallan.
type TxRunner struct{ s *Store }

var (
	_ repository.BillingTxRunner = (*TxRunner)(nil)
	_ repository.StockTxRunner   = (*TxRunner)(nil)
)

// RunBilling ejecuta fn con los repos del almacén. Si fn falla se restauran la configuración
// y el conjunto de facturas previos.
func (t *TxRunner) RunBilling(ctx context.Context, fn func(repository.SettingsRepository, repository.InvoiceRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	t.s.mu.RLock()
	var settingsBefore *entity.Settings
	if t.s.settings != nil {
		cp := *t.s.settings
		settingsBefore = &cp
	}
	invoicesBefore := make(map[string]struct{}, len(t.s.invoices))
	for id := range t.s.invoices {
		invoicesBefore[id] = struct{}{}
	}
	t.s.mu.RUnlock()

	if err := fn(&SettingsRepo{s: t.s, tx: true}, &InvoiceRepo{s: t.s, tx: true}); err != nil {
		t.s.mu.Lock()
		t.s.settings = settingsBefore
		for id := range t.s.invoices {
			if _, ok := invoicesBefore[id]; !ok {
				delete(t.s.invoices, id)
			}
		}
		t.s.mu.Unlock()
		return err
	}
	return ctx.Err()
}

// RunStock ejecuta fn con los repos de productos y movimientos. Si fn falla se restauran
// los productos y se descartan los movimientos añadidos.
func (t *TxRunner) RunStock(ctx context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	t.s.mu.RLock()
	productsBefore := make(map[string]storedProduct, len(t.s.products))
	for id, sp := range t.s.products {
		productsBefore[id] = sp
	}
	movementsBefore := len(t.s.movements)
	t.s.mu.RUnlock()

	if err := fn(&ProductRepo{s: t.s, tx: true}, &StockMovementRepo{s: t.s, tx: true}); err != nil {
		t.s.mu.Lock()
		t.s.products = productsBefore
		t.s.movements = t.s.movements[:movementsBefore]
		t.s.mu.Unlock()
		return err
	}
	return ctx.Err()
}

// ── dashboard ────────────────────────────────────────────────────────────────

// DashboardRepo calcula las cifras bajo un mismo bloqueo de lectura (instantánea coherente).
type DashboardRepo struct{ s *Store }

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// Counts devuelve las cinco cifras del dashboard.
func (r *DashboardRepo) Counts(ctx context.Context) (repository.DashboardCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := repository.DashboardCounts{
		TotalProducts:  len(r.s.products),
		TotalCustomers: len(r.s.customers),
	}
	for _, p := range r.s.products {
		if p.IsLowStock() {
			out.LowStockProducts++
		}
	}
	for _, inv := range r.s.invoices {
		switch inv.Status {
		case entity.InvoiceStatusDraft, entity.InvoiceStatusSent:
			out.OpenInvoices++
		case entity.InvoiceStatusPaid:
			out.TotalRevenue = out.TotalRevenue.Add(inv.GrossTotal)
		}
	}
	return out, nil
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
