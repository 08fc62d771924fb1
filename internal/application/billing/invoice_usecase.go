package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// DateLayout formato de fecha de facturas en la API.
const DateLayout = "2006-01-02"

// InvoiceUseCase crea facturas (numeración y totales en una transacción) y gestiona su ciclo de vida.
type InvoiceUseCase struct {
	txRunner     repository.BillingTxRunner
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	validate     *validation.Validator
	now          func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner repository.BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	validate *validation.Validator,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		validate:     validate,
		now:          time.Now,
	}
}

// Create crea una factura en DRAFT. El consecutivo se reserva en la misma transacción que el insert,
// y la tasa de IVA vigente queda congelada en la factura.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}

	// ── 1. Fechas ─────────────────────────────────────────────────────────────
	invoiceDate, _ := time.Parse(DateLayout, in.InvoiceDate)
	var serviceDate, dueDate time.Time
	if in.ServiceDate != "" {
		serviceDate, _ = time.Parse(DateLayout, in.ServiceDate)
	}
	if in.DueDate != "" {
		dueDate, _ = time.Parse(DateLayout, in.DueDate)
		if dueDate.Before(invoiceDate) {
			return nil, domain.NewValidationError("due_date", "no puede ser anterior a invoice_date")
		}
	}

	// ── 2. Cliente y productos referenciados ──────────────────────────────────
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("crear factura: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.NewValidationError("customer_id", "el cliente no existe")
	}
	items := make([]entity.InvoiceItem, 0, len(in.Items))
	for i, it := range in.Items {
		if it.ProductID != "" {
			p, err := uc.productRepo.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, fmt.Errorf("crear factura: obtener producto: %w", err)
			}
			if p == nil {
				return nil, domain.NewValidationError(fmt.Sprintf("items[%d].product_id", i), "el producto no existe")
			}
		}
		items = append(items, entity.InvoiceItem{
			ID:        uuid.New().String(),
			ProductID: it.ProductID,
			Position:  i + 1,
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.Round(2),
		})
	}

	now := uc.now()
	inv := &entity.Invoice{
		ID:          uuid.New().String(),
		CustomerID:  customer.ID,
		InvoiceDate: invoiceDate,
		ServiceDate: serviceDate,
		DueDate:     dueDate,
		Discount:    in.Discount.Round(2),
		Shipping:    in.Shipping.Round(2),
		Status:      entity.InvoiceStatusDraft,
		Notes:       in.Notes,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for k := range inv.Items {
		inv.Items[k].InvoiceID = inv.ID
	}
	inv.ApplyTotals()
	if inv.Discount.GreaterThan(inv.Subtotal()) {
		return nil, domain.NewValidationError("discount", "no puede superar el subtotal")
	}
	if field := inv.OversizedAmount(); field != "" {
		return nil, domain.NewValidationError(field, "importe fuera de rango")
	}

	// ── 3. Numeración, impuestos y persistencia en una transacción ────────────
	err = uc.txRunner.RunBilling(ctx, func(settingsRepo repository.SettingsRepository, invoiceRepo repository.InvoiceRepository) error {
		settings, err := settingsRepo.Get(ctx)
		if err != nil {
			return fmt.Errorf("obtener configuración: %w", err)
		}
		if settings == nil {
			return fmt.Errorf("configuración inexistente")
		}
		prefix, n, err := settingsRepo.NextInvoiceNumber(ctx)
		if err != nil {
			return fmt.Errorf("reservar consecutivo: %w", err)
		}
		inv.Number = FormatInvoiceNumber(prefix, n)
		if inv.DueDate.IsZero() {
			inv.DueDate = inv.InvoiceDate.AddDate(0, 0, settings.DefaultDueDays)
		}
		inv.TaxRate = settings.EffectiveTaxRate()
		inv.ApplyTotals()
		if field := inv.OversizedAmount(); field != "" {
			return domain.NewValidationError(field, "importe fuera de rango")
		}
		return invoiceRepo.Create(ctx, inv)
	})
	if err != nil {
		return nil, fmt.Errorf("crear factura: %w", err)
	}
	return toInvoiceResponse(inv, customer.Name), nil
}

// GetByID devuelve la factura con posiciones y nombre del cliente.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	name := ""
	if c, err := uc.customerRepo.GetByID(ctx, inv.CustomerID); err == nil && c != nil {
		name = c.Name
	}
	return toInvoiceResponse(inv, name), nil
}

// List lista las cabeceras por fecha de factura descendente.
func (uc *InvoiceUseCase) List(ctx context.Context) ([]dto.InvoiceResponse, error) {
	list, err := uc.invoiceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	customers, err := uc.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInvoiceResponse(inv, names[inv.CustomerID]))
	}
	return out, nil
}

// UpdateStatus aplica una transición del ciclo DRAFT -> SENT -> PAID (o CANCELLED).
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	inv, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, inv.Status, in.Status)
	}
	inv.Status = in.Status
	inv.UpdatedAt = uc.now()
	if err := uc.invoiceRepo.UpdateStatus(ctx, inv.ID, inv.Status, inv.UpdatedAt); err != nil {
		return nil, fmt.Errorf("actualizar estado: %w", err)
	}
	return uc.GetByID(ctx, inv.ID)
}

// Delete elimina una factura en borrador.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	inv, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if !inv.IsEditable() {
		return domain.ErrInvoiceNotEditable
	}
	if err := uc.invoiceRepo.Delete(ctx, inv.ID); err != nil {
		return fmt.Errorf("eliminar factura: %w", err)
	}
	return nil
}

func (uc *InvoiceUseCase) find(ctx context.Context, id string) (*entity.Invoice, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// FormatInvoiceNumber compone el número visible: FAC-0001.
func FormatInvoiceNumber(prefix string, n int) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func toInvoiceResponse(inv *entity.Invoice, customerName string) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		CustomerID:   inv.CustomerID,
		CustomerName: customerName,
		InvoiceDate:  formatDate(inv.InvoiceDate),
		ServiceDate:  formatDate(inv.ServiceDate),
		DueDate:      formatDate(inv.DueDate),
		Status:       inv.Status,
		Discount:     inv.Discount,
		Shipping:     inv.Shipping,
		NetTotal:     inv.NetTotal,
		TaxRate:      inv.TaxRate,
		TaxTotal:     inv.TaxTotal,
		GrossTotal:   inv.GrossTotal,
		Notes:        inv.Notes,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
	for _, it := range inv.Items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Position:  it.Position,
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	return out
}
