package repository

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus posiciones.
type InvoiceRepository interface {
	// Create persiste cabecera y posiciones. Debe ejecutarse dentro de una transacción.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID devuelve la factura con sus posiciones ordenadas por Position.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// List devuelve las cabeceras (sin posiciones) por fecha de factura descendente.
	List(ctx context.Context) ([]*entity.Invoice, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	// ExistsByProduct indica si alguna posición de factura referencia el producto.
	ExistsByProduct(ctx context.Context, productID string) (bool, error)
}
