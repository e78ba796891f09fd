package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock (DIP).
// No hay borrado: el libro de movimientos solo crece.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.MovementDetail, error)
	List(ctx context.Context, filter entity.MovementFilter) ([]*entity.MovementDetail, error)
	// SetTransport enlaza (o desenlaza con nil) el transporte del movimiento.
	SetTransport(ctx context.Context, movementID string, transportID *string) error
}
