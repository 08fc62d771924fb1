package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// SettingsUseCase lectura y edición del registro único de configuración.
type SettingsUseCase struct {
	repo     repository.SettingsRepository
	validate *validation.Validator
	now      func() time.Time
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository, validate *validation.Validator) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, validate: validate, now: time.Now}
}

// EnsureDefault crea la fila por defecto si no existe. Se llama al arrancar y es idempotente.
func (uc *SettingsUseCase) EnsureDefault(ctx context.Context) error {
	if err := uc.repo.EnsureDefault(ctx, entity.DefaultSettings(uc.now())); err != nil {
		return fmt.Errorf("configuración por defecto: %w", err)
	}
	return nil
}

// Get devuelve la configuración actual, creándola si hiciera falta.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	s, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(s), nil
}

// Update reemplaza perfil, numeración e impuestos. Subir el número inicial adelanta el
// próximo consecutivo; bajarlo nunca lo hace retroceder.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.SettingsRequest) (*dto.SettingsResponse, error) {
	in.InvoicePrefix = strings.TrimSpace(in.InvoicePrefix)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	s, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	s.CompanyName = in.CompanyName
	s.Address = in.CompanyAddress
	s.PostalCode = in.CompanyPostalCode
	s.City = in.CompanyCity
	s.Country = in.CompanyCountry
	s.Email = in.CompanyEmail
	s.Phone = in.CompanyPhone
	s.IBAN = in.IBAN
	s.BIC = in.BIC
	s.Bank = in.BankName
	s.TaxNumber = in.TaxNumber
	s.LogoURL = in.LogoURL
	s.InvoicePrefix = in.InvoicePrefix
	s.InvoiceStartNumber = in.InvoiceStartNumber
	if s.InvoiceNextNumber < in.InvoiceStartNumber {
		s.InvoiceNextNumber = in.InvoiceStartNumber
	}
	s.DefaultDueDays = in.DefaultDueDays
	s.TaxEnabled = in.TaxEnabled
	s.TaxRate = in.TaxRate.Round(2)
	s.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("actualizar configuración: %w", err)
	}
	// releer: el almacén puede haber avanzado el consecutivo entre tanto
	return uc.Get(ctx)
}

func (uc *SettingsUseCase) load(ctx context.Context) (*entity.Settings, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtener configuración: %w", err)
	}
	if s != nil {
		return s, nil
	}
	if err := uc.EnsureDefault(ctx); err != nil {
		return nil, err
	}
	s, err = uc.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtener configuración: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("obtener configuración: fila inexistente tras crearla")
	}
	return s, nil
}

func toSettingsResponse(s *entity.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		CompanyName:        s.CompanyName,
		CompanyAddress:     s.Address,
		CompanyPostalCode:  s.PostalCode,
		CompanyCity:        s.City,
		CompanyCountry:     s.Country,
		CompanyEmail:       s.Email,
		CompanyPhone:       s.Phone,
		IBAN:               s.IBAN,
		BIC:                s.BIC,
		BankName:           s.Bank,
		TaxNumber:          s.TaxNumber,
		LogoURL:            s.LogoURL,
		InvoicePrefix:      s.InvoicePrefix,
		InvoiceStartNumber: s.InvoiceStartNumber,
		InvoiceNextNumber:  s.InvoiceNextNumber,
		DefaultDueDays:     s.DefaultDueDays,
		TaxEnabled:         s.TaxEnabled,
		TaxRate:            s.TaxRate,
		UpdatedAt:          s.UpdatedAt,
	}
}
