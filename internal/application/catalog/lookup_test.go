package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jhoicas/caja-api/internal/application/catalog"
	"github.com/jhoicas/caja-api/internal/application/dto"
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

// mapCache caché en memoria que cuenta accesos y puede fallar.
type mapCache struct {
	items map[string]entity.Product
	hits  int
	sets  int
	fail  error
}

func newMapCache() *mapCache { return &mapCache{items: map[string]entity.Product{}} }

func (c *mapCache) Get(_ context.Context, barcode string) (*entity.Product, bool, error) {
	if c.fail != nil {
		return nil, false, c.fail
	}
	p, ok := c.items[barcode]
	if !ok {
		return nil, false, nil
	}
	c.hits++
	return &p, true, nil
}

func (c *mapCache) Set(_ context.Context, p *entity.Product, _ time.Duration) error {
	if c.fail != nil {
		return c.fail
	}
	c.sets++
	c.items[p.Barcode] = *p
	return nil
}

func (c *mapCache) Delete(_ context.Context, barcode string) error {
	delete(c.items, barcode)
	return nil
}

func seedProduct(t *testing.T, store *memory.Store) entity.Product {
	t.Helper()
	p := entity.Product{ID: "leche", Barcode: "7790001", Name: "Leche entera", UnitType: entity.UnitPiece, Price: d("10")}
	require.NoError(t, store.Products().Create(context.Background(), &p))
	return p
}

func TestResolve_UsaCacheDespuesDelPrimerAcceso(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store)
	cache := newMapCache()
	svc := catalog.NewLookupService(store.Products(), cache, time.Minute, logger.Nop())

	p, err := svc.Resolve(context.Background(), " 7790001 ")
	require.NoError(t, err)
	assert.Equal(t, "leche", p.ID)
	assert.Equal(t, 1, cache.sets)

	_, err = svc.Resolve(context.Background(), "7790001")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
}

func TestResolve_NoEncontrado(t *testing.T) {
	svc := catalog.NewLookupService(memory.NewStore().Products(), nil, 0, logger.Nop())

	_, err := svc.Resolve(context.Background(), "000")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.Resolve(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolve_FalloDeCacheNoEsFatal(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store)
	cache := newMapCache()
	cache.fail = errors.New("redis caído")
	svc := catalog.NewLookupService(store.Products(), cache, time.Minute, logger.Nop())

	p, err := svc.Resolve(context.Background(), "7790001")
	require.NoError(t, err)
	assert.Equal(t, "leche", p.ID)
}

func TestProductUseCase_CrearConStockInicial(t *testing.T) {
	store := memory.NewStore()
	lookup := catalog.NewLookupService(store.Products(), nil, 0, logger.Nop())
	receiver := inventory.NewReceiveStockUseCase(memory.NewTxRunner(store), logger.Nop())
	uc := catalog.NewProductUseCase(store.Products(), lookup, receiver)
	initial := d("12")

	out, err := uc.Create(context.Background(), "admin-1", dto.CreateProductRequest{
		Barcode: "7791", Name: "Yerba", UnitType: entity.UnitPiece, Price: d("5.5"), InitialStock: &initial,
	})
	require.NoError(t, err)

	bal, err := store.Stock().Get(context.Background(), out.ID)
	require.NoError(t, err)
	assert.True(t, d("12").Equal(bal.Quantity))

	_, err = uc.Create(context.Background(), "admin-1", dto.CreateProductRequest{Barcode: "7791", Name: "Otra", UnitType: entity.UnitPiece, Price: d("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), "admin-1", dto.CreateProductRequest{Barcode: "7792", Name: "Otra", UnitType: "litro", Price: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_UpdateInvalidaCache(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store)
	cache := newMapCache()
	lookup := catalog.NewLookupService(store.Products(), cache, time.Minute, logger.Nop())
	uc := catalog.NewProductUseCase(store.Products(), lookup, nil)

	_, err := uc.GetByBarcode(context.Background(), "7790001")
	require.NoError(t, err)
	require.Contains(t, cache.items, "7790001")

	price := d("11.25")
	out, err := uc.Update(context.Background(), "leche", dto.UpdateProductRequest{Price: &price})
	require.NoError(t, err)
	assert.True(t, price.Equal(out.Price))
	assert.NotContains(t, cache.items, "7790001")

	again, err := uc.GetByBarcode(context.Background(), "7790001")
	require.NoError(t, err)
	assert.True(t, price.Equal(again.Price))

	_, err = uc.Update(context.Background(), "fantasma", dto.UpdateProductRequest{Price: &price})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// failingReceiver rechaza toda entrada de mercancía.
type failingReceiver struct{ err error }

func (r failingReceiver) Receive(context.Context, inventory.ReceiveInput) (*entity.InventoryMovement, error) {
	return nil, r.err
}

func TestProductUseCase_StockInicialFallidoDevuelveProductoConAviso(t *testing.T) {
	store := memory.NewStore()
	lookup := catalog.NewLookupService(store.Products(), nil, 0, logger.Nop())
	uc := catalog.NewProductUseCase(store.Products(), lookup, failingReceiver{err: errors.New("tx abortada")})
	initial := d("3")

	out, err := uc.Create(context.Background(), "admin-1", dto.CreateProductRequest{
		Barcode: "7795", Name: "Harina", UnitType: entity.UnitPiece, Price: d("2"), InitialStock: &initial,
	})
	require.NoError(t, err, "el alta ya quedó guardada, no debe reportarse como fallida")
	require.NotNil(t, out)
	assert.Contains(t, out.Warning, "sin existencia inicial")

	saved, err := store.Products().GetByBarcode(context.Background(), "7795")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, out.ID, saved.ID)

	bal, err := store.Stock().Get(context.Background(), out.ID)
	require.NoError(t, err)
	assert.True(t, bal.Quantity.IsZero())
}

// wrappingRepo envuelve los errores del repositorio como haría un adaptador real.
type wrappingRepo struct {
	*memory.ProductRepo
}

func (r wrappingRepo) Update(ctx context.Context, p *entity.Product) error {
	if err := r.ProductRepo.Update(ctx, p); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func TestProductUseCase_UpdateReconoceErroresEnvueltos(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store)
	other := entity.Product{ID: "pan", Barcode: "7790002", Name: "Pan", UnitType: entity.UnitPiece, Price: d("1")}
	require.NoError(t, store.Products().Create(context.Background(), &other))

	repo := wrappingRepo{ProductRepo: store.Products()}
	lookup := catalog.NewLookupService(repo, nil, 0, logger.Nop())
	uc := catalog.NewProductUseCase(repo, lookup, nil)

	taken := "7790002"
	_, err := uc.Update(context.Background(), "leche", dto.UpdateProductRequest{Barcode: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.NotErrorIs(t, err, domain.ErrPersistence)
}
