package cart

import "github.com/shopspring/decimal"

// EventKind tipo de cambio notificado por el carrito.
type EventKind string

const (
	EventAdded   EventKind = "added"
	EventUpdated EventKind = "updated"
	EventRemoved EventKind = "removed"
	EventCleared EventKind = "cleared"
)

// Event describe un cambio ya aplicado. Quantity es la nueva cantidad de la línea
// (cero si se eliminó) y GrandTotal el total del carrito después del cambio.
type Event struct {
	Kind       EventKind
	ProductID  string
	Quantity   decimal.Decimal
	GrandTotal decimal.Decimal
}

type listener struct {
	id int
	fn func(Event)
}

// Subscribe registra fn para recibir los cambios del carrito. Se invoca de forma
// síncrona después de cada mutación. Devuelve la función para darse de baja.
func (c *Cart) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

func (c *Cart) emit(kind EventKind, productID string, quantity decimal.Decimal) {
	if len(c.listeners) == 0 {
		return
	}
	ev := Event{Kind: kind, ProductID: productID, Quantity: quantity, GrandTotal: c.GrandTotal()}
	for _, l := range c.listeners {
		l.fn(ev)
	}
}
