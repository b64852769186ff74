package repository

import (
	"context"
	"time"

	"github.com/jhoicas/caja-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	// Create inserta la cabecera y asigna sale.ID (identidad generada por el almacenamiento).
	Create(ctx context.Context, sale *entity.Sale) error
	// CreateLine inserta una línea y asigna line.ID.
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	// GetByIDForUpdate bloquea la cabecera (reversión).
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Sale, error)
	ListLines(ctx context.Context, saleID int64) ([]*entity.SaleLine, error)
	List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
	DeleteLines(ctx context.Context, saleID int64) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
