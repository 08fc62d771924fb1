package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// SettingsRepository persistencia del registro único de configuración (id "default").
type SettingsRepository interface {
	// Get devuelve (nil, nil) si todavía no existe.
	Get(ctx context.Context) (*entity.Settings, error)
	// EnsureDefault inserta s solo si no hay fila; es idempotente.
	EnsureDefault(ctx context.Context, s *entity.Settings) error
	// Update guarda perfil, impuestos y numeración. El próximo consecutivo nunca retrocede.
	Update(ctx context.Context, s *entity.Settings) error
	// NextInvoiceNumber reserva el siguiente consecutivo y devuelve prefijo y número.
	// Debe llamarse dentro de la misma transacción que crea la factura.
	NextInvoiceNumber(ctx context.Context) (prefix string, number int, err error)
}
