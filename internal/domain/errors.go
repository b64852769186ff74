package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStockUpdateFailed = errors.New("no se pudo actualizar el stock")
	ErrPersistence       = errors.New("error de persistencia")
)

// StockError asocia un error de stock (ErrInsufficientStock o ErrStockUpdateFailed)
// al producto que lo provocó. Se compara con errors.Is contra el sentinel envuelto.
type StockError struct {
	ProductID string
	Err       error
}

// NewStockError construye un StockError para el producto indicado.
func NewStockError(productID string, err error) *StockError {
	return &StockError{ProductID: productID, Err: err}
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%v (producto %s)", e.Err, e.ProductID)
}

func (e *StockError) Unwrap() error { return e.Err }

// StockProductID devuelve el producto asociado si err contiene un StockError.
func StockProductID(err error) (string, bool) {
	var se *StockError
	if errors.As(err, &se) {
		return se.ProductID, true
	}
	return "", false
}

// Persistence envuelve un error de infraestructura como ErrPersistence conservando la causa.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
