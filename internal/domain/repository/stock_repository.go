package repository

import (
	"context"

	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository define el puerto para consultar/actualizar stock_balances.
// Usado dentro de transacciones para garantizar consistencia; nadie fuera del Ledger
// debe escribir cantidades.
type StockRepository interface {
	// Get devuelve el saldo del producto; si no hay fila, Quantity=0 y Exists=false.
	Get(ctx context.Context, productID string) (*entity.StockBalance, error)
	// GetForUpdate igual que Get pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, productID string) (*entity.StockBalance, error)
	// Insert crea la fila del producto. Devuelve domain.ErrDuplicate si ya existe.
	Insert(ctx context.Context, productID string, quantity decimal.Decimal) error
	// CompareAndSet escribe next solo si la cantidad actual sigue siendo expected.
	// Devuelve false (sin error) si otro escritor la cambió antes.
	CompareAndSet(ctx context.Context, productID string, expected, next decimal.Decimal) (bool, error)
}
