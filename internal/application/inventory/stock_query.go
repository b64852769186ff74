package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/inventory"
	"github.com/jhoicas/caja-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// StockQuery consultas de existencias e historial fuera de transacción.
type StockQuery struct {
	ledger      *inventory.Ledger
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
}

// NewStockQuery construye el caso de uso.
func NewStockQuery(stockRepo repository.StockRepository, productRepo repository.ProductRepository, movRepo repository.InventoryMovementRepository) *StockQuery {
	return &StockQuery{ledger: inventory.NewLedger(stockRepo), productRepo: productRepo, movRepo: movRepo}
}

// Available devuelve la existencia del producto. ErrProductNotFound si no está en el catálogo.
func (q *StockQuery) Available(ctx context.Context, productID string) (decimal.Decimal, error) {
	if err := q.ensureProduct(ctx, productID); err != nil {
		return decimal.Zero, err
	}
	return q.ledger.Available(ctx, productID)
}

// Movements historial de un producto, más recientes primero.
func (q *StockQuery) Movements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	if err := q.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	list, err := q.movRepo.ListByProduct(ctx, productID, from, to, limit, offset)
	if err != nil {
		return nil, domain.Persistence("listar movimientos", err)
	}
	return list, nil
}

func (q *StockQuery) ensureProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return domain.ErrInvalidInput
	}
	p, err := q.productRepo.GetByID(ctx, productID)
	if err != nil {
		return domain.Persistence("leer producto", err)
	}
	if p == nil {
		return domain.ErrProductNotFound
	}
	return nil
}
