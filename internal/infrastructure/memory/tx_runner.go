package memory

import (
	"context"

	"github.com/jhoicas/caja-api/internal/application/inventory"
	"github.com/jhoicas/caja-api/internal/application/sale"
	"github.com/jhoicas/caja-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sale.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks sobre un clon del estado y lo publica solo si fn no falla.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx access) error) error {
	if err := r.store.lock(ctx); err != nil {
		return err
	}
	defer r.store.unlock()

	work := r.store.st.clone()
	if err := fn(bound(work)); err != nil {
		return err
	}
	r.store.st = work
	return nil
}

// Run inicia una transacción con repos de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.run(ctx, func(tx access) error {
		return fn(&InventoryMovementRepo{with: tx}, &StockRepo{with: tx}, &ProductRepo{with: tx})
	})
}

// RunSale inicia una transacción con los repos que usa el motor de venta.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return r.run(ctx, func(tx access) error {
		return fn(&SaleRepo{with: tx}, &StockRepo{with: tx}, &InventoryMovementRepo{with: tx})
	})
}
