package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/inventory"
)

// fakeStock es un StockRepository en memoria con inyección de fallos.
type fakeStock struct {
	rows        map[string]decimal.Decimal
	casConflict bool
	insertErr   error
	getErr      error
}

func newFakeStock() *fakeStock {
	return &fakeStock{rows: map[string]decimal.Decimal{}}
}

func (f *fakeStock) Get(_ context.Context, productID string) (*entity.StockBalance, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	q, ok := f.rows[productID]
	return &entity.StockBalance{ProductID: productID, Quantity: q, Exists: ok}, nil
}

func (f *fakeStock) GetForUpdate(ctx context.Context, productID string) (*entity.StockBalance, error) {
	return f.Get(ctx, productID)
}

func (f *fakeStock) Insert(_ context.Context, productID string, quantity decimal.Decimal) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, ok := f.rows[productID]; ok {
		return domain.ErrDuplicate
	}
	f.rows[productID] = quantity
	return nil
}

func (f *fakeStock) CompareAndSet(_ context.Context, productID string, expected, next decimal.Decimal) (bool, error) {
	if f.casConflict {
		return false, nil
	}
	if !f.rows[productID].Equal(expected) {
		return false, nil
	}
	f.rows[productID] = next
	return true, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLedger_AvailableSinRegistroEsCero(t *testing.T) {
	l := inventory.NewLedger(newFakeStock())

	got, err := l.Available(context.Background(), "p-1")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestLedger_TryReserveNoModifica(t *testing.T) {
	repo := newFakeStock()
	repo.rows["p-1"] = d("5")
	l := inventory.NewLedger(repo)

	ok, err := l.TryReserve(context.Background(), "p-1", d("5"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.TryReserve(context.Background(), "p-1", d("5.001"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, repo.rows["p-1"].Equal(d("5")), "TryReserve no debe mutar el stock")
}

func TestLedger_ApplyDeltaDescuentaYSuma(t *testing.T) {
	repo := newFakeStock()
	repo.rows["p-1"] = d("5")
	l := inventory.NewLedger(repo)
	ctx := context.Background()

	require.NoError(t, l.ApplyDelta(ctx, "p-1", d("-2")))
	assert.True(t, repo.rows["p-1"].Equal(d("3")))

	require.NoError(t, l.ApplyDelta(ctx, "p-1", d("0.75")))
	assert.True(t, repo.rows["p-1"].Equal(d("3.75")))

	require.NoError(t, l.ApplyDelta(ctx, "p-1", d("-3.75")))
	assert.True(t, repo.rows["p-1"].IsZero(), "llegar exactamente a cero es válido")
}

func TestLedger_ApplyDeltaNuncaNegativo(t *testing.T) {
	repo := newFakeStock()
	repo.rows["p-1"] = d("1")
	l := inventory.NewLedger(repo)

	err := l.ApplyDelta(context.Background(), "p-1", d("-2"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	id, ok := domain.StockProductID(err)
	assert.True(t, ok)
	assert.Equal(t, "p-1", id)
	assert.True(t, repo.rows["p-1"].Equal(d("1")), "el estado no debe cambiar")
}

func TestLedger_SinRegistro(t *testing.T) {
	repo := newFakeStock()
	l := inventory.NewLedger(repo)
	ctx := context.Background()

	err := l.ApplyDelta(ctx, "nuevo", d("-1"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, exists := repo.rows["nuevo"]
	assert.False(t, exists, "delta negativo sin registro no crea fila")

	require.NoError(t, l.ApplyDelta(ctx, "nuevo", d("4")))
	assert.True(t, repo.rows["nuevo"].Equal(d("4")))
}

func TestLedger_ConflictoCAS(t *testing.T) {
	repo := newFakeStock()
	repo.rows["p-1"] = d("5")
	repo.casConflict = true
	l := inventory.NewLedger(repo)

	err := l.ApplyDelta(context.Background(), "p-1", d("-1"))
	assert.ErrorIs(t, err, domain.ErrStockUpdateFailed)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, repo.rows["p-1"].Equal(d("5")))
}

func TestLedger_InsertConcurrenteEsConflicto(t *testing.T) {
	repo := newFakeStock()
	repo.insertErr = domain.ErrDuplicate
	l := inventory.NewLedger(repo)

	err := l.ApplyDelta(context.Background(), "p-1", d("1"))
	assert.ErrorIs(t, err, domain.ErrStockUpdateFailed)
}

func TestLedger_FalloDeAlmacenamiento(t *testing.T) {
	cause := errors.New("conexión perdida")
	repo := newFakeStock()
	repo.getErr = cause
	l := inventory.NewLedger(repo)

	err := l.ApplyDelta(context.Background(), "p-1", d("-1"))
	assert.ErrorIs(t, err, domain.ErrStockUpdateFailed)
	assert.ErrorIs(t, err, cause)

	_, err = l.Available(context.Background(), "p-1")
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestLedger_DeltaCeroEsNoop(t *testing.T) {
	repo := newFakeStock()
	l := inventory.NewLedger(repo)

	require.NoError(t, l.ApplyDelta(context.Background(), "p-1", decimal.Zero))
	assert.Empty(t, repo.rows)
}
