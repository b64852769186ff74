// Package cart implementa el carrito en memoria de la venta en curso: agrega los
// escaneos por producto y expone el total siempre recalculado desde las líneas.
package cart

import (
	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LineItem es la línea de un producto dentro del carrito. UnitPrice se congela
// al agregar el producto por primera vez.
type LineItem struct {
	ProductID string
	Barcode   string
	Name      string
	UnitType  string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Total devuelve Quantity × UnitPrice.
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Cart colección ordenada de líneas, a lo sumo una por producto.
// No es seguro para uso concurrente: el dueño (la caja) serializa el acceso.
type Cart struct {
	lines     []*LineItem
	byProduct map[string]*LineItem
	listeners []listener
	nextID    int
}

// New crea un carrito vacío.
func New() *Cart {
	return &Cart{byProduct: make(map[string]*LineItem)}
}

// AddOrIncrement suma delta a la línea del producto o la crea con cantidad = delta.
// unitPrice solo se usa al crear la línea; una línea existente conserva su precio.
func (c *Cart) AddOrIncrement(product entity.Product, unitPrice, delta decimal.Decimal) (LineItem, error) {
	if product.ID == "" || !delta.IsPositive() || unitPrice.IsNegative() {
		return LineItem{}, domain.ErrInvalidInput
	}
	if li, ok := c.byProduct[product.ID]; ok {
		if !acceptsQuantity(li.UnitType, delta) {
			return LineItem{}, domain.ErrInvalidInput
		}
		li.Quantity = li.Quantity.Add(delta)
		c.emit(EventUpdated, li.ProductID, li.Quantity)
		return *li, nil
	}
	if !acceptsQuantity(product.UnitType, delta) {
		return LineItem{}, domain.ErrInvalidInput
	}
	li := &LineItem{
		ProductID: product.ID,
		Barcode:   product.Barcode,
		Name:      product.Name,
		UnitType:  product.UnitType,
		Quantity:  delta,
		UnitPrice: unitPrice,
	}
	c.lines = append(c.lines, li)
	c.byProduct[li.ProductID] = li
	c.emit(EventAdded, li.ProductID, li.Quantity)
	return *li, nil
}

// Adjust aplica un incremento con signo a una línea existente (botones +/-).
// Si el resultado es <= 0 la línea se elimina en lugar de quedar negativa.
func (c *Cart) Adjust(productID string, delta decimal.Decimal) error {
	li, ok := c.byProduct[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if !acceptsQuantity(li.UnitType, delta.Abs()) {
		return domain.ErrInvalidInput
	}
	return c.SetQuantity(productID, li.Quantity.Add(delta))
}

// SetQuantity reemplaza la cantidad; quantity <= 0 significa "fuera del carrito".
func (c *Cart) SetQuantity(productID string, quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		c.Remove(productID)
		return nil
	}
	li, ok := c.byProduct[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if !acceptsQuantity(li.UnitType, quantity) {
		return domain.ErrInvalidInput
	}
	if li.Quantity.Equal(quantity) {
		return nil
	}
	li.Quantity = quantity
	c.emit(EventUpdated, productID, quantity)
	return nil
}

// Remove elimina la línea si existe.
func (c *Cart) Remove(productID string) {
	if _, ok := c.byProduct[productID]; !ok {
		return
	}
	delete(c.byProduct, productID)
	for i, li := range c.lines {
		if li.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
	c.emit(EventRemoved, productID, decimal.Zero)
}

// Clear vacía el carrito (tras confirmar la venta o al cancelarla).
func (c *Cart) Clear() {
	if len(c.lines) == 0 {
		return
	}
	c.lines = nil
	c.byProduct = make(map[string]*LineItem)
	c.emit(EventCleared, "", decimal.Zero)
}

// GrandTotal suma los totales de línea en cada llamada (sin caché).
func (c *Cart) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range c.lines {
		total = total.Add(li.Total())
	}
	return total
}

// Lines devuelve una copia de las líneas en orden de inserción.
func (c *Cart) Lines() []LineItem {
	out := make([]LineItem, len(c.lines))
	for i, li := range c.lines {
		out[i] = *li
	}
	return out
}

// Line devuelve la línea del producto, si existe.
func (c *Cart) Line(productID string) (LineItem, bool) {
	li, ok := c.byProduct[productID]
	if !ok {
		return LineItem{}, false
	}
	return *li, true
}

// Len número de líneas.
func (c *Cart) Len() int { return len(c.lines) }

// IsEmpty indica si no hay líneas.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// acceptsQuantity: las unidades por pieza solo admiten cantidades enteras.
func acceptsQuantity(unitType string, q decimal.Decimal) bool {
	if unitType == entity.UnitWeight {
		return true
	}
	return q.Equal(q.Truncate(0))
}
