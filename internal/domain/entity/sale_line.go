package entity

import "github.com/shopspring/decimal"

// SaleLine representa una línea persistida de una venta (precio congelado al escanear).
type SaleLine struct {
	ID        int64
	SaleID    int64
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Total devuelve Quantity × UnitPrice.
func (l *SaleLine) Total() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}
