package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	validate *validation.Validator
	now      func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, validate *validation.Validator) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, validate: validate, now: time.Now}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	in = trimCustomer(in)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	customer := &entity.Customer{ID: uuid.New().String(), CreatedAt: now}
	applyCustomer(customer, in, now)
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	return toCustomerResponse(customer), nil
}

// CreateBatch alta masiva de mejor esfuerzo: las filas inválidas y las que el almacén rechaza
// por conflicto se omiten y se cuentan sin abortar el lote. Cualquier otro error del almacén
// corta el lote y se devuelve junto con lo creado hasta ese momento.
func (uc *CustomerUseCase) CreateBatch(ctx context.Context, in []dto.CustomerRequest) (*dto.BatchResult, error) {
	res := &dto.BatchResult{}
	for _, row := range in {
		row = trimCustomer(row)
		if err := uc.validate.Struct(row); err != nil {
			res.Skipped++
			continue
		}
		now := uc.now()
		customer := &entity.Customer{ID: uuid.New().String(), CreatedAt: now}
		applyCustomer(customer, row, now)
		if err := uc.repo.Create(ctx, customer); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("alta masiva: %w", err)
		}
		res.Created++
	}
	return res, nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// List lista los clientes por nombre.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// Update reemplaza los datos del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	in = trimCustomer(in)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	customer, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCustomer(customer, in, uc.now())
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("actualizar cliente: %w", err)
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina un cliente sin facturas.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar cliente: %w", err)
	}
	return nil
}

func (uc *CustomerUseCase) find(ctx context.Context, id string) (*entity.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func trimCustomer(in dto.CustomerRequest) dto.CustomerRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.TaxID = strings.TrimSpace(in.TaxID)
	return in
}

func applyCustomer(c *entity.Customer, in dto.CustomerRequest, now time.Time) {
	c.Name = in.Name
	c.Company = in.Company
	c.Address = in.Address
	c.PostalCode = in.PostalCode
	c.City = in.City
	c.Country = in.Country
	c.Email = in.Email
	c.Phone = in.Phone
	c.TaxID = in.TaxID
	c.Notes = in.Notes
	c.UpdatedAt = now
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Company:    c.Company,
		Address:    c.Address,
		PostalCode: c.PostalCode,
		City:       c.City,
		Country:    c.Country,
		Email:      c.Email,
		Phone:      c.Phone,
		TaxID:      c.TaxID,
		Notes:      c.Notes,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
