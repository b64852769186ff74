package memory

import (
	"context"
	"time"

	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo saldos en memoria. Dentro de una tx el bloqueo de fila es implícito:
// el almacén solo admite una transacción a la vez.
type StockRepo struct {
	with access
}

func (r *StockRepo) Get(ctx context.Context, productID string) (*entity.StockBalance, error) {
	var out *entity.StockBalance
	err := r.with(ctx, func(st *state) error {
		bal, ok := st.stock[productID]
		if !ok {
			out = &entity.StockBalance{ProductID: productID, Quantity: decimal.Zero}
			return nil
		}
		bal.Exists = true
		out = &bal
		return nil
	})
	return out, err
}

func (r *StockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.StockBalance, error) {
	return r.Get(ctx, productID)
}

func (r *StockRepo) Insert(ctx context.Context, productID string, quantity decimal.Decimal) error {
	return r.with(ctx, func(st *state) error {
		if _, ok := st.stock[productID]; ok {
			return domain.ErrDuplicate
		}
		st.stock[productID] = entity.StockBalance{ProductID: productID, Quantity: quantity, UpdatedAt: time.Now().UTC()}
		return nil
	})
}

func (r *StockRepo) CompareAndSet(ctx context.Context, productID string, expected, next decimal.Decimal) (bool, error) {
	var ok bool
	err := r.with(ctx, func(st *state) error {
		bal, found := st.stock[productID]
		if !found || !bal.Quantity.Equal(expected) {
			return nil
		}
		bal.Quantity = next
		bal.UpdatedAt = time.Now().UTC()
		st.stock[productID] = bal
		ok = true
		return nil
	})
	return ok, err
}
