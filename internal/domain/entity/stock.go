package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance representa la existencia actual de un producto. Quantity nunca es negativa
// en un estado confirmado; solo la modifica el Ledger dentro de una transacción.
type StockBalance struct {
	ProductID string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
	Exists    bool // false si el producto aún no tiene fila en stock_balances
}
