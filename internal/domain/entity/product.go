package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de unidad de venta.
const (
	UnitPiece  = "piece"  // por pieza, cantidades enteras
	UnitWeight = "weight" // por peso/volumen, admite fracciones
)

// Product representa un producto del catálogo. Para el motor de venta es inmutable:
// el precio se copia a la línea del carrito en el momento del escaneo.
type Product struct {
	ID        string
	Barcode   string // clave única de escaneo
	Name      string
	UnitType  string // piece, weight
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidUnitType indica si u es un tipo de unidad reconocido.
func IsValidUnitType(u string) bool {
	return u == UnitPiece || u == UnitWeight
}

// AllowsFraction indica si el producto se vende en cantidades fraccionarias.
func (p *Product) AllowsFraction() bool {
	return p.UnitType == UnitWeight
}
