// Package till orquesta la caja: escaneo, carrito en curso y cobro.
package till

import (
	"context"
	"sync"

	"github.com/jhoicas/caja-api/internal/application/catalog"
	"github.com/jhoicas/caja-api/internal/application/sale"
	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/cart"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Committer confirma el contenido del carrito como venta.
type Committer interface {
	Commit(ctx context.Context, in sale.CommitInput) (*entity.Sale, error)
}

// CheckoutInput datos del cobro.
type CheckoutInput struct {
	PaymentMethod  string
	ReceivedAmount decimal.Decimal // solo efectivo
	Comment        string
	CashierID      string
}

// CheckoutResult venta confirmada y vuelto a entregar.
type CheckoutResult struct {
	Sale   *entity.Sale
	Change decimal.Decimal
}

// Snapshot foto inmutable del carrito.
type Snapshot struct {
	Lines      []cart.LineItem
	GrandTotal decimal.Decimal
}

// Till caja única del proceso: un carrito activo, accesos serializados.
type Till struct {
	mu        sync.Mutex
	cart      *cart.Cart
	lookup    catalog.ProductLookup
	committer Committer
	log       *logger.Logger
}

// New construye la caja con un carrito vacío.
func New(lookup catalog.ProductLookup, committer Committer, log *logger.Logger) *Till {
	return &Till{cart: cart.New(), lookup: lookup, committer: committer, log: log.Named("till")}
}

// Scan agrega una unidad del producto escaneado (o suma una a su línea).
func (t *Till) Scan(ctx context.Context, barcode string) (cart.LineItem, error) {
	return t.AddProduct(ctx, barcode, decimal.NewFromInt(1))
}

// AddProduct agrega quantity del producto (productos por peso). Si el código no existe
// el carrito no cambia.
func (t *Till) AddProduct(ctx context.Context, barcode string, quantity decimal.Decimal) (cart.LineItem, error) {
	product, err := t.lookup.Resolve(ctx, barcode)
	if err != nil {
		return cart.LineItem{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	item, err := t.cart.AddOrIncrement(*product, product.Price, quantity)
	if err != nil {
		return cart.LineItem{}, err
	}
	t.log.Debug().Str("product_id", item.ProductID).Str("quantity", item.Quantity.String()).Msg("producto agregado")
	return item, nil
}

// Adjust suma delta (con signo) a la línea; si queda en cero o menos, la elimina.
func (t *Till) Adjust(productID string, delta decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cart.Adjust(productID, delta)
}

// SetQuantity reemplaza la cantidad de la línea; <= 0 la elimina.
func (t *Till) SetQuantity(productID string, quantity decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cart.SetQuantity(productID, quantity)
}

// Remove quita la línea del producto, si existe.
func (t *Till) Remove(productID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cart.Remove(productID)
}

// Cancel descarta la venta en curso. No hay nada persistido que revertir.
func (t *Till) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cart.Clear()
}

// Snapshot devuelve el estado actual del carrito.
func (t *Till) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{Lines: t.cart.Lines(), GrandTotal: t.cart.GrandTotal()}
}

// Subscribe registra un observador de cambios del carrito. Se invoca con la caja bloqueada:
// no debe llamar de vuelta a la caja.
func (t *Till) Subscribe(fn func(cart.Event)) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	unsub := t.cart.Subscribe(fn)
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		unsub()
	}
}

// Checkout confirma la venta. En efectivo exige ReceivedAmount >= total y devuelve el vuelto.
// El carrito se vacía solo si la venta quedó confirmada.
func (t *Till) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cart.IsEmpty() || !entity.IsValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	total := t.cart.GrandTotal()
	change := decimal.Zero
	if in.PaymentMethod == entity.PaymentCash {
		if in.ReceivedAmount.LessThan(total) {
			return nil, domain.ErrInvalidInput
		}
		change = in.ReceivedAmount.Sub(total)
	}

	s, err := t.committer.Commit(ctx, sale.CommitInput{
		Lines:         t.cart.Lines(),
		PaymentMethod: in.PaymentMethod,
		Comment:       in.Comment,
		CashierID:     in.CashierID,
	})
	if err != nil {
		return nil, err
	}
	t.cart.Clear()
	return &CheckoutResult{Sale: s, Change: change}, nil
}
