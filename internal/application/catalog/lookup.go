package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/repository"
	"github.com/jhoicas/caja-api/pkg/logger"
)

var _ ProductLookup = (*LookupService)(nil)

// LookupService resuelve códigos de barras consultando primero la caché y luego el repositorio.
// La caché nunca es autoritativa: sus errores se registran y se ignoran.
type LookupService struct {
	repo  repository.ProductRepository
	cache BarcodeCache
	ttl   time.Duration
	log   *logger.Logger
}

// NewLookupService construye el servicio. cache puede ser nil (sin caché).
func NewLookupService(repo repository.ProductRepository, cache BarcodeCache, ttl time.Duration, log *logger.Logger) *LookupService {
	return &LookupService{repo: repo, cache: cache, ttl: ttl, log: log.Named("product_lookup")}
}

// Resolve devuelve el producto del código de barras o domain.ErrProductNotFound.
func (s *LookupService) Resolve(ctx context.Context, barcode string) (*entity.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}

	if s.cache != nil {
		p, found, err := s.cache.Get(ctx, barcode)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("barcode", barcode).Msg("caché de códigos no disponible")
		case found:
			return p, nil
		}
	}

	p, err := s.repo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, domain.Persistence("buscar producto por código", err)
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.Set(ctx, p, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("barcode", barcode).Msg("no se pudo cachear el producto")
		}
	}
	return p, nil
}

// Invalidate descarta la entrada en caché de un código (cambio de precio o de código).
func (s *LookupService) Invalidate(ctx context.Context, barcode string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, barcode); err != nil {
		s.log.Warn().Err(err).Str("barcode", barcode).Msg("no se pudo invalidar la caché")
	}
}
