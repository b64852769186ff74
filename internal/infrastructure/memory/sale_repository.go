package memory

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria. Los IDs siguen una secuencia que no se reutiliza
// aunque la transacción se descarte.
type SaleRepo struct {
	with access
}

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return r.with(ctx, func(st *state) error {
		st.seq.sale++
		sale.ID = st.seq.sale
		header := *sale
		header.Lines = nil
		st.sales[sale.ID] = header
		return nil
	})
}

func (r *SaleRepo) CreateLine(ctx context.Context, line *entity.SaleLine) error {
	return r.with(ctx, func(st *state) error {
		if _, ok := st.sales[line.SaleID]; !ok {
			return domain.ErrNotFound
		}
		st.seq.line++
		line.ID = st.seq.line
		st.saleLines[line.SaleID] = append(st.saleLines[line.SaleID], *line)
		return nil
	})
}

func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.with(ctx, func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) ListLines(ctx context.Context, saleID int64) ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	err := r.with(ctx, func(st *state) error {
		for _, l := range st.saleLines[saleID] {
			out = append(out, &l)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.with(ctx, func(st *state) error {
		all := make([]entity.Sale, 0, len(st.sales))
		for _, s := range st.sales {
			if from != nil && s.Date.Before(*from) {
				continue
			}
			if to != nil && !s.Date.Before(*to) {
				continue
			}
			all = append(all, s)
		}
		slices.SortFunc(all, func(a, b entity.Sale) int {
			if c := b.Date.Compare(a.Date); c != 0 {
				return c
			}
			return int(b.ID - a.ID)
		})
		for _, s := range page(all, limit, offset) {
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) DeleteLines(ctx context.Context, saleID int64) (int64, error) {
	var n int64
	err := r.with(ctx, func(st *state) error {
		n = int64(len(st.saleLines[saleID]))
		delete(st.saleLines, saleID)
		return nil
	})
	return n, err
}

func (r *SaleRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.with(ctx, func(st *state) error {
		if _, ok := st.sales[id]; !ok {
			return nil
		}
		if len(st.saleLines[id]) > 0 {
			// misma restricción que la FK de sale_lines
			return domain.ErrInvalidInput
		}
		delete(st.sales, id)
		deleted = true
		return nil
	})
	return deleted, err
}
