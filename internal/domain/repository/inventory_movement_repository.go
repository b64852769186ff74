package repository

import (
	"context"
	"time"

	"github.com/jhoicas/caja-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto del historial de movimientos (solo inserción).
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByReference(ctx context.Context, reference string) ([]*entity.InventoryMovement, error)
}
