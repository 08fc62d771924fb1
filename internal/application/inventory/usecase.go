package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// StockUseCase registra movimientos de stock de forma transaccional (IN, OUT, ADJUSTMENT)
// con bloqueo de fila del producto y Commit/Rollback.
type StockUseCase struct {
	txRunner     repository.StockTxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	validate     *validation.Validator
	now          func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner repository.StockTxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	validate *validation.Validator,
) *StockUseCase {
	return &StockUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		validate:     validate,
		now:          time.Now,
	}
}

// RegisterMovement valida la entrada, bloquea la fila del producto, aplica el movimiento
// y guarda el registro, todo en la misma transacción. userID puede ir vacío.
func (uc *StockUseCase) RegisterMovement(ctx context.Context, productID, userID string, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	if in.Type != entity.MovementTypeADJUSTMENT && in.Quantity < 0 {
		return nil, domain.NewValidationError("quantity", "debe ser positiva para "+in.Type)
	}
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrNotFound
	}

	var out *entity.StockMovement
	err := uc.txRunner.RunStock(ctx, func(products repository.ProductRepository, movements repository.StockMovementRepository) error {
		// Bloquea la fila del producto para evitar condiciones de carrera
		p, err := products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		now := uc.now().UTC()
		m, err := applyMovement(p, in, now)
		if err != nil {
			return err
		}
		m.CreatedBy = userID
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		if err := movements.Create(ctx, m); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	return toMovementResponse(out), nil
}

// ListMovements historial de movimientos de un producto, más recientes primero.
func (uc *StockUseCase) ListMovements(ctx context.Context, productID string) ([]dto.StockMovementResponse, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrNotFound
	}
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movementRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

// applyMovement modifica p según el tipo y devuelve el movimiento resultante.
// IN: suma stock y, con unit_cost, recalcula el precio de compra por costo promedio ponderado.
// OUT: verifica StockActual >= CantidadSolicitada y resta.
// ADJUSTMENT: positivo como IN sin costo, negativo como OUT.
func applyMovement(p *entity.Product, in dto.StockMovementRequest, now time.Time) (*entity.StockMovement, error) {
	unitCost := p.PurchasePrice
	delta := in.Quantity

	switch in.Type {
	case entity.MovementTypeIN:
		if in.UnitCost != nil {
			unitCost = in.UnitCost.Round(2)
			p.PurchasePrice = inventory.CostCalculator(p.CurrentStock, p.PurchasePrice, in.Quantity, unitCost)
		}
	case entity.MovementTypeOUT:
		delta = -in.Quantity
	case entity.MovementTypeADJUSTMENT:
	default:
		return nil, domain.NewValidationError("type", "tipo de movimiento desconocido")
	}

	if p.CurrentStock+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	if p.CurrentStock+delta > entity.MaxQuantity {
		return nil, domain.NewValidationError("quantity", "el stock resultante supera el máximo")
	}
	totalCost := decimal.NewFromInt(int64(delta)).Mul(unitCost).Round(2)
	if totalCost.Abs().GreaterThan(entity.MaxMovementCost) {
		return nil, domain.NewValidationError("quantity", "el costo total del movimiento está fuera de rango")
	}
	p.CurrentStock += delta
	p.UpdatedAt = now

	return &entity.StockMovement{
		ID:         uuid.New().String(),
		ProductID:  p.ID,
		Type:       in.Type,
		Quantity:   delta,
		UnitCost:   unitCost,
		TotalCost:  totalCost,
		StockAfter: p.CurrentStock,
		Reason:     in.Reason,
		CreatedAt:  now,
	}, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		UnitCost:   m.UnitCost,
		TotalCost:  m.TotalCost,
		StockAfter: m.StockAfter,
		Reason:     m.Reason,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
	}
}
