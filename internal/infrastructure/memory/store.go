package memory

import (
	"context"
	"maps"
	"slices"

	"github.com/jhoicas/caja-api/internal/domain/entity"
)

// state es la foto completa de los datos. Las transacciones trabajan sobre un clon
// y lo publican solo al confirmar.
type state struct {
	products  map[string]entity.Product
	barcodes  map[string]string // barcode -> product id
	stock     map[string]entity.StockBalance
	sales     map[int64]entity.Sale // cabeceras sin líneas
	saleLines map[int64][]entity.SaleLine
	movements []entity.InventoryMovement
	users     map[string]entity.User
	seq       *sequences // compartido entre clones, como una secuencia de PostgreSQL
}

type sequences struct {
	sale int64
	line int64
}

func newState() *state {
	return &state{
		products:  make(map[string]entity.Product),
		barcodes:  make(map[string]string),
		stock:     make(map[string]entity.StockBalance),
		sales:     make(map[int64]entity.Sale),
		saleLines: make(map[int64][]entity.SaleLine),
		users:     make(map[string]entity.User),
		seq:       &sequences{},
	}
}

func (s *state) clone() *state {
	lines := make(map[int64][]entity.SaleLine, len(s.saleLines))
	for id, l := range s.saleLines {
		lines[id] = slices.Clone(l)
	}
	return &state{
		products:  maps.Clone(s.products),
		barcodes:  maps.Clone(s.barcodes),
		stock:     maps.Clone(s.stock),
		sales:     maps.Clone(s.sales),
		saleLines: lines,
		movements: slices.Clone(s.movements),
		users:     maps.Clone(s.users),
		seq:       s.seq,
	}
}

// Store almacenamiento en proceso con transacciones serializables: una sola
// transacción (o lectura suelta) a la vez. Sirve para modo desarrollo y tests.
type Store struct {
	sem chan struct{}
	st  *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{sem: make(chan struct{}, 1), st: newState()}
}

// lock adquiere el acceso exclusivo respetando la cancelación del contexto.
func (s *Store) lock(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) unlock() {
	<-s.sem
}

// access ejecuta fn sobre un estado: el publicado (operaciones sueltas) o el clon de una tx.
type access func(ctx context.Context, fn func(*state) error) error

func (s *Store) direct(ctx context.Context, fn func(*state) error) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()
	return fn(s.st)
}

func bound(st *state) access {
	return func(ctx context.Context, fn func(*state) error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(st)
	}
}

// Products devuelve el repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{with: s.direct} }

// Stock devuelve el repositorio de saldos fuera de transacción.
func (s *Store) Stock() *StockRepo { return &StockRepo{with: s.direct} }

// Sales devuelve el repositorio de ventas fuera de transacción.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{with: s.direct} }

// Movements devuelve el repositorio del historial de movimientos fuera de transacción.
func (s *Store) Movements() *InventoryMovementRepo { return &InventoryMovementRepo{with: s.direct} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{with: s.direct} }
