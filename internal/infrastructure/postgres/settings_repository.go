package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo persistencia de la fila única de configuración.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

const settingsColumns = `id, company_name, address, postal_code, city, country, email, phone, iban, bic, bank,
	tax_number, logo_url, invoice_prefix, invoice_start_number, invoice_next_number, default_due_days,
	tax_enabled, tax_rate, updated_at`

// Get devuelve la configuración o (nil, nil) si la fila aún no existe.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	var s entity.Settings
	err := r.q.QueryRow(ctx, `SELECT `+settingsColumns+` FROM settings WHERE id = $1`, entity.SettingsID).Scan(
		&s.ID, &s.CompanyName, &s.Address, &s.PostalCode, &s.City, &s.Country, &s.Email, &s.Phone,
		&s.IBAN, &s.BIC, &s.Bank, &s.TaxNumber, &s.LogoURL, &s.InvoicePrefix, &s.InvoiceStartNumber,
		&s.InvoiceNextNumber, &s.DefaultDueDays, &s.TaxEnabled, &s.TaxRate, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// EnsureDefault inserta la fila si no existe (idempotente).
func (r *SettingsRepo) EnsureDefault(ctx context.Context, s *entity.Settings) error {
	query := `
		INSERT INTO settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (id) DO NOTHING`
	_, err := r.q.Exec(ctx, query,
		entity.SettingsID, s.CompanyName, s.Address, s.PostalCode, s.City, s.Country, s.Email, s.Phone,
		s.IBAN, s.BIC, s.Bank, s.TaxNumber, s.LogoURL, s.InvoicePrefix, s.InvoiceStartNumber,
		s.InvoiceNextNumber, s.DefaultDueDays, s.TaxEnabled, s.TaxRate, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("ensure settings: %w", err)
	}
	return nil
}

// Update guarda la configuración. El próximo consecutivo solo avanza: se queda con el mayor entre
// el actual, el propuesto y el número inicial.
func (r *SettingsRepo) Update(ctx context.Context, s *entity.Settings) error {
	query := `
		UPDATE settings SET company_name = $2, address = $3, postal_code = $4, city = $5, country = $6,
			email = $7, phone = $8, iban = $9, bic = $10, bank = $11, tax_number = $12, logo_url = $13,
			invoice_prefix = $14, invoice_start_number = $15,
			invoice_next_number = GREATEST(invoice_next_number, $16, $15),
			default_due_days = $17, tax_enabled = $18, tax_rate = $19, updated_at = $20
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		entity.SettingsID, s.CompanyName, s.Address, s.PostalCode, s.City, s.Country, s.Email, s.Phone,
		s.IBAN, s.BIC, s.Bank, s.TaxNumber, s.LogoURL, s.InvoicePrefix, s.InvoiceStartNumber,
		s.InvoiceNextNumber, s.DefaultDueDays, s.TaxEnabled, s.TaxRate, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update settings: %w", domain.ErrNotFound)
	}
	return nil
}

// NextInvoiceNumber incrementa el contador y devuelve el valor reservado. El UPDATE bloquea la fila
// hasta el commit, así dos facturas concurrentes nunca reciben el mismo número.
func (r *SettingsRepo) NextInvoiceNumber(ctx context.Context) (string, int, error) {
	var (
		prefix string
		n      int
	)
	err := r.q.QueryRow(ctx, `
		UPDATE settings SET invoice_next_number = invoice_next_number + 1
		WHERE id = $1
		RETURNING invoice_prefix, invoice_next_number - 1`, entity.SettingsID).Scan(&prefix, &n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", 0, fmt.Errorf("next invoice number: %w", domain.ErrNotFound)
		}
		return "", 0, fmt.Errorf("next invoice number: %w", err)
	}
	return prefix, n, nil
}
