package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo historial de movimientos en memoria (solo inserción).
type InventoryMovementRepo struct {
	with access
}

func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	return r.with(ctx, func(st *state) error {
		if movement.ID == "" {
			movement.ID = uuid.New().String()
		}
		if movement.Date.IsZero() {
			movement.Date = time.Now().UTC()
		}
		st.movements = append(st.movements, *movement)
		return nil
	})
}

func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.with(ctx, func(st *state) error {
		var matched []entity.InventoryMovement
		for _, m := range st.movements {
			if m.ProductID != productID {
				continue
			}
			if from != nil && m.Date.Before(*from) {
				continue
			}
			if to != nil && !m.Date.Before(*to) {
				continue
			}
			matched = append(matched, m)
		}
		// más recientes primero; el orden de inserción desempata
		slices.Reverse(matched)
		slices.SortStableFunc(matched, func(a, b entity.InventoryMovement) int {
			return b.Date.Compare(a.Date)
		})
		for _, m := range page(matched, limit, offset) {
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

func (r *InventoryMovementRepo) ListByReference(ctx context.Context, reference string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.with(ctx, func(st *state) error {
		for _, m := range st.movements {
			if m.Reference == reference {
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}
