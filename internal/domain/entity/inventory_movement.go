package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN     = "IN"     // entrada de mercancía
	MovementTypeSALE   = "SALE"   // salida por venta
	MovementTypeRETURN = "RETURN" // reingreso por reversión de venta
)

// InventoryMovement es una entrada del historial de movimientos (solo inserción).
// El motor de venta no la consulta para decidir; sirve de auditoría.
type InventoryMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  decimal.Decimal // positivo entrada/reingreso, negativo venta
	UnitPrice decimal.Decimal
	Reference string
	Notes     string
	Date      time.Time
	CreatedBy string
}

// SaleReference referencia de movimiento para una venta.
func SaleReference(saleID int64) string {
	return fmt.Sprintf("SALE-%d", saleID)
}

// ReturnReference referencia de movimiento para la reversión de una venta.
func ReturnReference(saleID int64) string {
	return fmt.Sprintf("RETURN-SALE-%d", saleID)
}
