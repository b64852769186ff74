package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo actual de un producto.
func (r *StockRepo) Get(ctx context.Context, productID string) (*entity.StockBalance, error) {
	return r.get(ctx, `SELECT product_id, quantity, updated_at FROM stock_balances WHERE product_id = $1`, productID)
}

// GetForUpdate obtiene el saldo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.StockBalance, error) {
	return r.get(ctx, `SELECT product_id, quantity, updated_at FROM stock_balances WHERE product_id = $1 FOR UPDATE`, productID)
}

func (r *StockRepo) get(ctx context.Context, query, productID string) (*entity.StockBalance, error) {
	var s entity.StockBalance
	err := r.q.QueryRow(ctx, query, productID).Scan(&s.ProductID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{ProductID: productID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	s.Exists = true
	return &s, nil
}

// Insert crea la fila del producto. Otra transacción pudo crearla antes: ErrDuplicate.
func (r *StockRepo) Insert(ctx context.Context, productID string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_balances (product_id, quantity, updated_at) VALUES ($1, $2, now())`,
		productID, quantity,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// CompareAndSet escribe next solo si la cantidad sigue siendo expected.
func (r *StockRepo) CompareAndSet(ctx context.Context, productID string, expected, next decimal.Decimal) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_balances SET quantity = $3, updated_at = now() WHERE product_id = $1 AND quantity = $2`,
		productID, expected, next,
	)
	if err != nil {
		return false, fmt.Errorf("update stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}
