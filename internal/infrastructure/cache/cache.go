package cache

import (
	"context"
	"time"

	"github.com/jhoicas/caja-api/internal/application/catalog"
	"github.com/jhoicas/caja-api/internal/domain/entity"
)

var _ catalog.BarcodeCache = NoopBarcodeCache{}

// NoopBarcodeCache caché vacía: toda consulta va al repositorio.
type NoopBarcodeCache struct{}

func (NoopBarcodeCache) Get(_ context.Context, _ string) (*entity.Product, bool, error) {
	return nil, false, nil
}

func (NoopBarcodeCache) Set(_ context.Context, _ *entity.Product, _ time.Duration) error {
	return nil
}

func (NoopBarcodeCache) Delete(_ context.Context, _ string) error {
	return nil
}
