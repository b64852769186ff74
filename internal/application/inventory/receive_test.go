package inventory_test

import (
	"context"
	"testing"

	"github.com/jhoicas/caja-api/internal/application/inventory"
	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/infrastructure/memory"
	"github.com/jhoicas/caja-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*memory.Store, *inventory.ReceiveStockUseCase, *inventory.StockQuery) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "arroz", Barcode: "7701", Name: "Arroz 1kg", UnitType: entity.UnitPiece, Price: d("4.20")}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "queso", Barcode: "7702", Name: "Queso", UnitType: entity.UnitWeight, Price: d("32.50")}))

	uc := inventory.NewReceiveStockUseCase(memory.NewTxRunner(store), logger.Nop())
	q := inventory.NewStockQuery(store.Stock(), store.Products(), store.Movements())
	return store, uc, q
}

func TestReceive_CreaSaldoYMovimiento(t *testing.T) {
	_, uc, q := setup(t)
	ctx := context.Background()

	mov, err := uc.Receive(ctx, inventory.ReceiveInput{ProductID: "arroz", Quantity: d("24"), PurchasePrice: d("3.10"), Reference: "FAC-881", UserID: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, "FAC-881", mov.Reference)

	_, err = uc.Receive(ctx, inventory.ReceiveInput{ProductID: "arroz", Quantity: d("6"), PurchasePrice: d("3.10")})
	require.NoError(t, err)

	available, err := q.Available(ctx, "arroz")
	require.NoError(t, err)
	assert.True(t, d("30").Equal(available))

	movs, err := q.Movements(ctx, "arroz", nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 2)
}

func TestReceive_FraccionSoloEnProductosPorPeso(t *testing.T) {
	_, uc, q := setup(t)
	ctx := context.Background()

	_, err := uc.Receive(ctx, inventory.ReceiveInput{ProductID: "arroz", Quantity: d("1.5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Receive(ctx, inventory.ReceiveInput{ProductID: "queso", Quantity: d("2.375")})
	require.NoError(t, err)
	available, err := q.Available(ctx, "queso")
	require.NoError(t, err)
	assert.True(t, d("2.375").Equal(available))
}

func TestReceive_EntradasInvalidas(t *testing.T) {
	store, uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Receive(ctx, inventory.ReceiveInput{ProductID: "arroz", Quantity: d("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Receive(ctx, inventory.ReceiveInput{ProductID: "arroz", Quantity: d("1"), PurchasePrice: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Receive(ctx, inventory.ReceiveInput{ProductID: "fantasma", Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	bal, err := store.Stock().Get(ctx, "fantasma")
	require.NoError(t, err)
	assert.False(t, bal.Exists)
}

func TestStockQuery_ProductoInexistente(t *testing.T) {
	_, _, q := setup(t)

	_, err := q.Available(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	available, err := q.Available(context.Background(), "arroz")
	require.NoError(t, err)
	assert.True(t, available.IsZero())
}
