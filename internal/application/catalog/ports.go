package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/caja-api/internal/domain/entity"
)

// ProductLookup resuelve un código de barras a un producto del catálogo.
// Producto inexistente: domain.ErrProductNotFound.
type ProductLookup interface {
	Resolve(ctx context.Context, barcode string) (*entity.Product, error)
}

// BarcodeCache caché barcode -> producto. found=false sin error si la clave no está.
type BarcodeCache interface {
	Get(ctx context.Context, barcode string) (product *entity.Product, found bool, err error)
	Set(ctx context.Context, product *entity.Product, ttl time.Duration) error
	Delete(ctx context.Context, barcode string) error
}
