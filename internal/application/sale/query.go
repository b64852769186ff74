package sale

import (
	"context"
	"time"

	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/repository"
)

// QueryUseCase consultas de ventas confirmadas (fuera de transacción).
type QueryUseCase struct {
	repo repository.SaleRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(repo repository.SaleRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// GetSale devuelve cabecera y líneas. ErrNotFound si no existe.
func (uc *QueryUseCase) GetSale(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Persistence("leer venta", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.repo.ListLines(ctx, id)
	if err != nil {
		return nil, domain.Persistence("leer líneas de venta", err)
	}
	s.Lines = lines
	return s, nil
}

// ListSales lista cabeceras en [from, to), más recientes primero.
func (uc *QueryUseCase) ListSales(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, from, to, limit, offset)
	if err != nil {
		return nil, domain.Persistence("listar ventas", err)
	}
	return list, nil
}
