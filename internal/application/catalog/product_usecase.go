package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/caja-api/internal/application/dto"
	"github.com/jhoicas/caja-api/internal/application/inventory"
	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/repository"
)

// StockReceiver registra entradas de mercancía (existencia inicial de un producto nuevo).
type StockReceiver interface {
	Receive(ctx context.Context, in inventory.ReceiveInput) (*entity.InventoryMovement, error)
}

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	lookup   *LookupService
	receiver StockReceiver
}

// NewProductUseCase construye el caso de uso. receiver puede ser nil si no se admite stock inicial.
func NewProductUseCase(repo repository.ProductRepository, lookup *LookupService, receiver StockReceiver) *ProductUseCase {
	return &ProductUseCase{repo: repo, lookup: lookup, receiver: receiver}
}

// Create crea un nuevo producto y, si se indica, su existencia inicial.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Barcode = strings.TrimSpace(in.Barcode)
	in.Name = strings.TrimSpace(in.Name)
	if in.Barcode == "" || in.Name == "" || !entity.IsValidUnitType(in.UnitType) || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialStock != nil && (in.InitialStock.IsNegative() || (in.UnitType == entity.UnitPiece && !in.InitialStock.IsInteger())) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByBarcode(ctx, in.Barcode)
	if err != nil {
		return nil, domain.Persistence("buscar producto por código", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Barcode:   in.Barcode,
		Name:      in.Name,
		UnitType:  in.UnitType,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		return nil, domain.Persistence("crear producto", err)
	}

	if in.InitialStock != nil && in.InitialStock.IsPositive() && uc.receiver != nil {
		_, err := uc.receiver.Receive(ctx, inventory.ReceiveInput{
			ProductID:     product.ID,
			Quantity:      *in.InitialStock,
			PurchasePrice: in.Price,
			Reference:     "INITIAL",
			Notes:         "existencia inicial",
			UserID:        userID,
		})
		if err != nil {
			// El producto ya quedó guardado: se informa en la respuesta para que la
			// existencia se cargue con una entrada de mercancía en vez de reintentar el alta.
			out := toProductResponse(product)
			out.Warning = "producto creado sin existencia inicial: " + err.Error()
			return out, nil
		}
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Persistence("leer producto", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// GetByBarcode resuelve por código de barras (con caché).
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	product, err := uc.lookup.Resolve(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. Los carritos abiertos conservan el precio con que se escaneó.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Persistence("leer producto", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	oldBarcode := product.Barcode
	if in.Barcode != nil {
		product.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.UnitType != nil {
		product.UnitType = *in.UnitType
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if product.Barcode == "" || product.Name == "" || !entity.IsValidUnitType(product.UnitType) || product.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.Persistence("actualizar producto", err)
	}
	uc.lookup.Invalidate(ctx, oldBarcode)
	if oldBarcode != product.Barcode {
		uc.lookup.Invalidate(ctx, product.Barcode)
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Persistence("listar productos", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Barcode:   p.Barcode,
		Name:      p.Name,
		UnitType:  p.UnitType,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
