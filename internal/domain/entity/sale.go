package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago reconocidos.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// IsValidPaymentMethod indica si m es un medio de pago reconocido.
func IsValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentCard
}

// Sale representa la cabecera de una venta confirmada. El ID lo asigna el almacenamiento
// al insertar; la venta nunca se modifica, solo se elimina completa por reversión.
type Sale struct {
	ID            int64
	Date          time.Time
	PaymentMethod string
	GrandTotal    decimal.Decimal
	Comment       string
	CashierID     string
	Lines         []*SaleLine
}
