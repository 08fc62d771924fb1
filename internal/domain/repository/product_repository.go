package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// El almacén es la autoridad final sobre la unicidad del SKU: Create y Update devuelven
// domain.ErrDuplicateSKU ante una violación del índice único. Delete devuelve
// domain.ErrProductInUse si una posición de factura todavía referencia el producto.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando su fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// List devuelve todos los productos, los más recientes primero.
	List(ctx context.Context) ([]*entity.Product, error)
	// ListLowStock devuelve los productos con current_stock < min_stock.
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
