package usecase

import (
	"context"
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

// ProductUseCase casos de uso CRUD para productos y la consulta de stock bajo.
type ProductUseCase struct {
	repo        repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
	validate    *validation.Validator
	now         func() time.Time
}

// NewProductUseCase construye el caso de uso. invoiceRepo se usa para comprobar referencias antes de eliminar.
func NewProductUseCase(repo repository.ProductRepository, invoiceRepo repository.InvoiceRepository, validate *validation.Validator) *ProductUseCase {
	return &ProductUseCase{repo: repo, invoiceRepo: invoiceRepo, validate: validate, now: time.Now}
}

// Create crea un producto. La comprobación previa del SKU es orientativa; el índice único del almacén decide.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.checkSKU(ctx, in.SKU, ""); err != nil {
		return nil, err
	}
	now := uc.now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		PurchasePrice: in.PurchasePrice.Round(2),
		SalePrice:     in.SalePrice.Round(2),
		CurrentStock:  in.CurrentStock,
		MinStock:      in.MinStock,
		Location:      in.Location,
		Supplier:      in.Supplier,
		ImageURL:      in.ImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica una actualización parcial. Cambiar el SKU vuelve a comprobar su unicidad.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku != product.SKU {
			if err := uc.checkSKU(ctx, sku, product.ID); err != nil {
				return nil, err
			}
		}
		product.SKU = sku
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "es obligatorio")
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = in.PurchasePrice.Round(2)
	}
	if in.SalePrice != nil {
		product.SalePrice = in.SalePrice.Round(2)
	}
	if in.CurrentStock != nil {
		product.CurrentStock = *in.CurrentStock
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("actualizar producto: %w", err)
	}
	return toProductResponse(product), nil
}

// List lista todos los productos, los más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	return toProductResponses(list), nil
}

// ListLowStock productos cuyo stock actual está por debajo de su mínimo.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar stock bajo: %w", err)
	}
	return toProductResponses(list), nil
}

// Delete elimina un producto. Falla con ErrProductInUse si alguna factura lo referencia;
// la FK RESTRICT del almacén cubre la carrera con una factura creada entre la consulta y el borrado.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	inUse, err := uc.invoiceRepo.ExistsByProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("eliminar producto: %w", err)
	}
	if inUse {
		return domain.ErrProductInUse
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar producto: %w", err)
	}
	return nil
}

func (uc *ProductUseCase) find(ctx context.Context, id string) (*entity.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// checkSKU falla si otro producto (distinto de exceptID) ya usa el SKU. Un SKU vacío nunca choca.
func (uc *ProductUseCase) checkSKU(ctx context.Context, sku, exceptID string) error {
	if sku == "" {
		return nil
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return fmt.Errorf("comprobar sku: %w", err)
	}
	if existing != nil && existing.ID != exceptID {
		return domain.ErrDuplicateSKU
	}
	return nil
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		CurrentStock:  p.CurrentStock,
		MinStock:      p.MinStock,
		LowStock:      p.IsLowStock(),
		Location:      p.Location,
		Supplier:      p.Supplier,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
