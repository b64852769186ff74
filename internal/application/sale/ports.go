package sale

import (
	"context"

	"github.com/jhoicas/caja-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Begin/Commit/Rollback son responsabilidad del runner: si fn devuelve error no queda nada escrito.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
