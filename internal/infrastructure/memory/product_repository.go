package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo en memoria.
type ProductRepo struct {
	with access
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.with(ctx, func(st *state) error {
		if product.ID == "" {
			product.ID = uuid.New().String()
		}
		if _, ok := st.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := st.barcodes[product.Barcode]; ok {
			return domain.ErrDuplicate
		}
		now := time.Now().UTC()
		if product.CreatedAt.IsZero() {
			product.CreatedAt = now
		}
		if product.UpdatedAt.IsZero() {
			product.UpdatedAt = now
		}
		st.products[product.ID] = *product
		st.barcodes[product.Barcode] = product.ID
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.with(ctx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	var out *entity.Product
	err := r.with(ctx, func(st *state) error {
		if id, ok := st.barcodes[barcode]; ok {
			p := st.products[id]
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.with(ctx, func(st *state) error {
		prev, ok := st.products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if prev.Barcode != product.Barcode {
			if _, taken := st.barcodes[product.Barcode]; taken {
				return domain.ErrDuplicate
			}
			delete(st.barcodes, prev.Barcode)
			st.barcodes[product.Barcode] = product.ID
		}
		product.CreatedAt = prev.CreatedAt
		st.products[product.ID] = *product
		return nil
	})
}

func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.with(ctx, func(st *state) error {
		all := make([]entity.Product, 0, len(st.products))
		for _, p := range st.products {
			all = append(all, p)
		}
		slices.SortFunc(all, func(a, b entity.Product) int {
			if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
				return c
			}
			return compareStrings(a.Name, b.Name)
		})
		for _, p := range page(all, limit, offset) {
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// page aplica limit/offset; limit <= 0 significa sin límite.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
