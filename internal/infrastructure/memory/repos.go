package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ── users ────────────────────────────────────────────────────────────────────

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if lower(existing.Email) == lower(u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if lower(u.Email) == lower(email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// ── products ─────────────────────────────────────────────────────────────────

// ProductRepo implementa repository.ProductRepository con la misma semántica que el índice único
// sobre sku y la FK RESTRICT desde invoice_items.
type ProductRepo struct {
	s  *Store
	tx bool
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.lockWrite(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.skuTaken(p.SKU, p.ID) {
		return domain.ErrDuplicateSKU
	}
	r.s.products[p.ID] = storedProduct{Product: *p, seq: r.s.nextSeq()}
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sp, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	p := sp.Product
	return &p, nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	if sku == "" {
		return nil, nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sp := range r.s.products {
		if sp.SKU == sku {
			p := sp.Product
			return &p, nil
		}
	}
	return nil, nil
}

// GetForUpdate equivale a GetByID: las transacciones del almacén ya están serializadas.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.lockWrite(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.products[p.ID]
	if !ok {
		return fmt.Errorf("update product: %w", domain.ErrNotFound)
	}
	if r.skuTaken(p.SKU, p.ID) {
		return domain.ErrDuplicateSKU
	}
	sp.Product = *p
	r.s.products[p.ID] = sp
	return nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	return r.list(func(*entity.Product) bool { return true }), nil
}

func (r *ProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	return r.list((*entity.Product).IsLowStock), nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.productReferenced(id) {
		return domain.ErrProductInUse
	}
	delete(r.s.products, id)
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.ProductID != id {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}

func (r *ProductRepo) skuTaken(sku, exceptID string) bool {
	if sku == "" {
		return false
	}
	for id, sp := range r.s.products {
		if id != exceptID && sp.SKU == sku {
			return true
		}
	}
	return false
}

func (r *ProductRepo) list(keep func(*entity.Product) bool) []*entity.Product {
	r.s.mu.RLock()
	all := make([]storedProduct, 0, len(r.s.products))
	for _, sp := range r.s.products {
		if keep(&sp.Product) {
			all = append(all, sp)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].seq > all[j].seq
	})
	out := make([]*entity.Product, 0, len(all))
	for _, sp := range all {
		p := sp.Product
		out = append(out, &p)
	}
	return out
}

// ── stock movements ──────────────────────────────────────────────────────────

// StockMovementRepo implementa repository.StockMovementRepository.
type StockMovementRepo struct {
	s  *Store
	tx bool
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.s.lockWrite(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[m.ProductID]; !ok {
		return fmt.Errorf("create stock movement: %w", domain.ErrNotFound)
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

// ListByProduct devuelve los movimientos en orden inverso de inserción.
func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ProductID == productID {
			m := r.s.movements[i]
			out = append(out, &m)
		}
	}
	return out, nil
}

// ── customers ────────────────────────────────────────────────────────────────

// CustomerRepo implementa repository.CustomerRepository.
type CustomerRepo struct {
	s  *Store
	tx bool
}

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	defer r.s.lockWrite(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	out := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		c := c
		out = append(out, &c)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if lower(out[i].Name) != lower(out[j].Name) {
			return lower(out[i].Name) < lower(out[j].Name)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	defer r.s.lockWrite(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return fmt.Errorf("update customer: %w", domain.ErrNotFound)
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.invoices {
		if inv.CustomerID == id {
			return domain.ErrCustomerInUse
		}
	}
	delete(r.s.customers, id)
	return nil
}

// ── invoices ─────────────────────────────────────────────────────────────────

// InvoiceRepo implementa repository.InvoiceRepository.
type InvoiceRepo struct {
	s  *Store
	tx bool
}

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	defer r.s.lockWrite(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[inv.CustomerID]; !ok {
		return fmt.Errorf("create invoice: cliente %s inexistente", inv.CustomerID)
	}
	for _, it := range inv.Items {
		if it.ProductID == "" {
			continue
		}
		if _, ok := r.s.products[it.ProductID]; !ok {
			return fmt.Errorf("create invoice: producto %s inexistente", it.ProductID)
		}
	}
	r.s.invoices[inv.ID] = storedInvoice{Invoice: copyInvoice(inv, true), seq: r.s.nextSeq()}
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	si, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	inv := copyInvoice(&si.Invoice, true)
	return &inv, nil
}

func (r *InvoiceRepo) List(_ context.Context) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	all := make([]storedInvoice, 0, len(r.s.invoices))
	for _, si := range r.s.invoices {
		all = append(all, si)
	}
	r.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].InvoiceDate.Equal(all[j].InvoiceDate) {
			return all[i].InvoiceDate.After(all[j].InvoiceDate)
		}
		return all[i].seq > all[j].seq
	})
	out := make([]*entity.Invoice, 0, len(all))
	for _, si := range all {
		inv := copyInvoice(&si.Invoice, false)
		out = append(out, &inv)
	}
	return out, nil
}

func (r *InvoiceRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	defer r.s.lockWrite(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	si, ok := r.s.invoices[id]
	if !ok {
		return fmt.Errorf("update invoice status: %w", domain.ErrNotFound)
	}
	si.Status = status
	si.UpdatedAt = updatedAt
	r.s.invoices[id] = si
	return nil
}

func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.invoices, id)
	return nil
}

func (r *InvoiceRepo) ExistsByProduct(_ context.Context, productID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.productReferenced(productID), nil
}

func copyInvoice(inv *entity.Invoice, withItems bool) entity.Invoice {
	out := *inv
	out.Items = nil
	if withItems && len(inv.Items) > 0 {
		out.Items = append([]entity.InvoiceItem(nil), inv.Items...)
		sort.Slice(out.Items, func(i, j int) bool { return out.Items[i].Position < out.Items[j].Position })
	}
	return out
}

// ── settings ─────────────────────────────────────────────────────────────────

// SettingsRepo implementa repository.SettingsRepository.
type SettingsRepo struct {
	s  *Store
	tx bool
}

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

func (r *SettingsRepo) Get(_ context.Context) (*entity.Settings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.settings == nil {
		return nil, nil
	}
	cp := *r.s.settings
	return &cp, nil
}

func (r *SettingsRepo) EnsureDefault(_ context.Context, s *entity.Settings) error {
	defer r.s.lockWrite(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.settings == nil {
		cp := *s
		cp.ID = entity.SettingsID
		r.s.settings = &cp
	}
	return nil
}

func (r *SettingsRepo) Update(_ context.Context, s *entity.Settings) error {
	defer r.s.lockWrite(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.settings == nil {
		return fmt.Errorf("update settings: %w", domain.ErrNotFound)
	}
	cp := *s
	cp.ID = entity.SettingsID
	next := r.s.settings.InvoiceNextNumber
	if cp.InvoiceNextNumber > next {
		next = cp.InvoiceNextNumber
	}
	if cp.InvoiceStartNumber > next {
		next = cp.InvoiceStartNumber
	}
	cp.InvoiceNextNumber = next
	r.s.settings = &cp
	return nil
}

func (r *SettingsRepo) NextInvoiceNumber(_ context.Context) (string, int, error) {
	defer r.s.lockWrite(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.settings == nil {
		return "", 0, fmt.Errorf("next invoice number: %w", domain.ErrNotFound)
	}
	n := r.s.settings.InvoiceNextNumber
	r.s.settings.InvoiceNextNumber = n + 1
	return r.s.settings.InvoicePrefix, n, nil
}
