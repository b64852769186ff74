package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/cart"
	"github.com/jhoicas/caja-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	leche = entity.Product{ID: "p-leche", Barcode: "4870001", Name: "Leche 1L", UnitType: entity.UnitPiece, Price: d("10")}
	queso = entity.Product{ID: "p-queso", Barcode: "2000017", Name: "Queso", UnitType: entity.UnitWeight, Price: d("32.50")}
)

func TestAddOrIncrement_AgregaEscaneosRepetidos(t *testing.T) {
	c := cart.New()
	for i := 0; i < 5; i++ {
		_, err := c.AddOrIncrement(leche, leche.Price, decimal.NewFromInt(1))
		require.NoError(t, err)
	}

	require.Equal(t, 1, c.Len(), "debe existir una sola línea por producto")
	li, ok := c.Line(leche.ID)
	require.True(t, ok)
	assert.True(t, li.Quantity.Equal(d("5")))
	assert.True(t, c.GrandTotal().Equal(d("50")))
}

func TestAddOrIncrement_SumaDeIncrementos(t *testing.T) {
	c := cart.New()
	deltas := []string{"0.250", "1.5", "0.003", "2"}
	want := decimal.Zero
	for _, s := range deltas {
		_, err := c.AddOrIncrement(queso, queso.Price, d(s))
		require.NoError(t, err)
		want = want.Add(d(s))
	}

	li, _ := c.Line(queso.ID)
	assert.True(t, li.Quantity.Equal(want), "cantidad %s, esperada %s", li.Quantity, want)
	assert.Equal(t, 1, c.Len())
}

func TestAddOrIncrement_PrecioCongeladoAlEscanear(t *testing.T) {
	c := cart.New()
	_, err := c.AddOrIncrement(leche, d("10"), decimal.NewFromInt(1))
	require.NoError(t, err)

	// El precio cambia en catálogo: la línea conserva el precio original.
	_, err = c.AddOrIncrement(leche, d("12"), decimal.NewFromInt(1))
	require.NoError(t, err)

	li, _ := c.Line(leche.ID)
	assert.True(t, li.UnitPrice.Equal(d("10")))
	assert.True(t, c.GrandTotal().Equal(d("20")))
}

func TestAddOrIncrement_EntradasInvalidas(t *testing.T) {
	c := cart.New()

	_, err := c.AddOrIncrement(leche, leche.Price, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.AddOrIncrement(leche, leche.Price, d("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.AddOrIncrement(leche, d("-0.01"), d("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.AddOrIncrement(entity.Product{}, d("1"), d("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.AddOrIncrement(leche, leche.Price, d("0.5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "pieza no admite fracciones")

	assert.True(t, c.IsEmpty())
}

func TestLines_OrdenDeInsercion(t *testing.T) {
	c := cart.New()
	_, _ = c.AddOrIncrement(queso, queso.Price, d("1"))
	_, _ = c.AddOrIncrement(leche, leche.Price, d("1"))
	_, _ = c.AddOrIncrement(queso, queso.Price, d("1"))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, queso.ID, lines[0].ProductID)
	assert.Equal(t, leche.ID, lines[1].ProductID)

	// Lines devuelve copias.
	lines[0].Quantity = d("99")
	li, _ := c.Line(queso.ID)
	assert.True(t, li.Quantity.Equal(d("2")))
}

func TestSetQuantity(t *testing.T) {
	c := cart.New()
	_, _ = c.AddOrIncrement(leche, leche.Price, d("1"))
	_, _ = c.AddOrIncrement(queso, queso.Price, d("1"))

	require.NoError(t, c.SetQuantity(queso.ID, d("0.750")))
	li, _ := c.Line(queso.ID)
	assert.True(t, li.Quantity.Equal(d("0.75")))

	require.NoError(t, c.SetQuantity(leche.ID, decimal.Zero))
	_, ok := c.Line(leche.ID)
	assert.False(t, ok, "cantidad cero elimina la línea")

	require.NoError(t, c.SetQuantity(queso.ID, d("-3")))
	assert.True(t, c.IsEmpty(), "cantidad negativa elimina la línea")

	assert.ErrorIs(t, c.SetQuantity("desconocido", d("2")), domain.ErrNotFound)
	assert.NoError(t, c.SetQuantity("desconocido", decimal.Zero))
}

func TestSetQuantity_PiezaFraccionaria(t *testing.T) {
	c := cart.New()
	_, _ = c.AddOrIncrement(leche, leche.Price, d("2"))

	assert.ErrorIs(t, c.SetQuantity(leche.ID, d("1.5")), domain.ErrInvalidInput)
	li, _ := c.Line(leche.ID)
	assert.True(t, li.Quantity.Equal(d("2")))
}

func TestAdjust_DecrementarPorDebajoDeCeroElimina(t *testing.T) {
	c := cart.New()
	_, _ = c.AddOrIncrement(leche, leche.Price, d("2"))

	require.NoError(t, c.Adjust(leche.ID, d("-1")))
	li, _ := c.Line(leche.ID)
	assert.True(t, li.Quantity.Equal(d("1")))

	require.NoError(t, c.Adjust(leche.ID, d("-5")))
	_, ok := c.Line(leche.ID)
	assert.False(t, ok)
	assert.True(t, c.GrandTotal().IsZero())

	assert.ErrorIs(t, c.Adjust(leche.ID, d("1")), domain.ErrNotFound)
}

func TestRemoveYClear(t *testing.T) {
	c := cart.New()
	_, _ = c.AddOrIncrement(leche, leche.Price, d("3"))
	_, _ = c.AddOrIncrement(queso, queso.Price, d("0.5"))

	c.Remove("no-existe")
	assert.Equal(t, 2, c.Len())

	c.Remove(leche.ID)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.GrandTotal().Equal(d("16.25")))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.GrandTotal().IsZero())
}

func TestGrandTotal_SiempreActual(t *testing.T) {
	c := cart.New()
	_, _ = c.AddOrIncrement(leche, leche.Price, d("2"))
	assert.True(t, c.GrandTotal().Equal(d("20")))

	_, _ = c.AddOrIncrement(queso, queso.Price, d("0.2"))
	assert.True(t, c.GrandTotal().Equal(d("26.5")))

	require.NoError(t, c.SetQuantity(leche.ID, d("1")))
	assert.True(t, c.GrandTotal().Equal(d("16.5")))

	c.Remove(queso.ID)
	assert.True(t, c.GrandTotal().Equal(d("10")))
}

func TestSubscribe_NotificaCambios(t *testing.T) {
	c := cart.New()
	var got []cart.Event
	unsubscribe := c.Subscribe(func(ev cart.Event) { got = append(got, ev) })

	_, _ = c.AddOrIncrement(leche, leche.Price, d("1"))
	_, _ = c.AddOrIncrement(leche, leche.Price, d("1"))
	c.Remove(leche.ID)
	_, _ = c.AddOrIncrement(queso, queso.Price, d("1"))
	c.Clear()

	require.Len(t, got, 5)
	assert.Equal(t, cart.EventAdded, got[0].Kind)
	assert.Equal(t, cart.EventUpdated, got[1].Kind)
	assert.True(t, got[1].Quantity.Equal(d("2")))
	assert.True(t, got[1].GrandTotal.Equal(d("20")))
	assert.Equal(t, cart.EventRemoved, got[2].Kind)
	assert.True(t, got[2].GrandTotal.IsZero())
	assert.Equal(t, cart.EventAdded, got[3].Kind)
	assert.Equal(t, cart.EventCleared, got[4].Kind)

	unsubscribe()
	_, _ = c.AddOrIncrement(leche, leche.Price, d("1"))
	assert.Len(t, got, 5, "después de darse de baja no llegan eventos")
}

func TestSubscribe_SinEventoEnOperacionesSinEfecto(t *testing.T) {
	c := cart.New()
	count := 0
	c.Subscribe(func(cart.Event) { count++ })

	c.Remove("nada")
	c.Clear()
	_, _ = c.AddOrIncrement(leche, leche.Price, d("0"))
	assert.Zero(t, count)
}
