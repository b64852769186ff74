package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Ledger es la única vía de escritura sobre stock_balances (servicio de dominio).
// Construirlo sobre el StockRepository atado a la transacción en curso: así la
// verificación y el descuento ocurren en la misma transacción que la venta.
type Ledger struct {
	repo repository.StockRepository
}

// NewLedger construye el ledger sobre el repositorio dado (pool o tx).
func NewLedger(repo repository.StockRepository) *Ledger {
	return &Ledger{repo: repo}
}

// Available devuelve la existencia actual; 0 si el producto no tiene registro.
func (l *Ledger) Available(ctx context.Context, productID string) (decimal.Decimal, error) {
	bal, err := l.repo.Get(ctx, productID)
	if err != nil {
		return decimal.Zero, domain.Persistence("leer stock", err)
	}
	return bal.Quantity, nil
}

// TryReserve verifica available >= quantity sin modificar nada.
// Solo es una comprobación previa: la autoritativa ocurre en ApplyDelta.
func (l *Ledger) TryReserve(ctx context.Context, productID string, quantity decimal.Decimal) (bool, error) {
	available, err := l.Available(ctx, productID)
	if err != nil {
		return false, err
	}
	return available.GreaterThanOrEqual(quantity), nil
}

// ApplyDelta suma delta (con signo) a la existencia del producto.
//   - Si el resultado sería negativo: StockError{ErrInsufficientStock}, sin cambios.
//   - Sin registro y delta positivo: crea el registro.
//   - La escritura es compare-and-set; si otro escritor cambió la fila: StockError{ErrStockUpdateFailed}.
func (l *Ledger) ApplyDelta(ctx context.Context, productID string, delta decimal.Decimal) error {
	if productID == "" {
		return domain.ErrInvalidInput
	}
	if delta.IsZero() {
		return nil
	}
	bal, err := l.repo.GetForUpdate(ctx, productID)
	if err != nil {
		return stockUpdateFailed(productID, err)
	}
	next := bal.Quantity.Add(delta)
	if next.IsNegative() {
		return domain.NewStockError(productID, domain.ErrInsufficientStock)
	}

	if !bal.Exists {
		if err := l.repo.Insert(ctx, productID, next); err != nil {
			return stockUpdateFailed(productID, err)
		}
		return nil
	}

	ok, err := l.repo.CompareAndSet(ctx, productID, bal.Quantity, next)
	if err != nil {
		return stockUpdateFailed(productID, err)
	}
	if !ok {
		return domain.NewStockError(productID, domain.ErrStockUpdateFailed)
	}
	return nil
}

func stockUpdateFailed(productID string, cause error) error {
	if errors.Is(cause, domain.ErrDuplicate) {
		// Otra transacción creó la fila entre la lectura y el insert.
		return domain.NewStockError(productID, domain.ErrStockUpdateFailed)
	}
	return domain.NewStockError(productID, fmt.Errorf("%w: %w", domain.ErrStockUpdateFailed, cause))
}
