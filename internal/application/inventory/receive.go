package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/inventory"
	"github.com/jhoicas/caja-api/internal/domain/repository"
	"github.com/jhoicas/caja-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// ReceiveInput entrada de mercancía para un producto.
type ReceiveInput struct {
	ProductID     string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	Reference     string
	Notes         string
	UserID        string
}

// ReceiveStockUseCase registra entradas de mercancía: suma al saldo y deja un movimiento IN,
// todo en una transacción.
type ReceiveStockUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewReceiveStockUseCase construye el caso de uso.
func NewReceiveStockUseCase(txRunner TxRunner, log *logger.Logger) *ReceiveStockUseCase {
	return &ReceiveStockUseCase{txRunner: txRunner, log: log.Named("stock_receipt"), now: time.Now}
}

// Receive aplica la entrada. Producto inexistente: ErrProductNotFound.
func (uc *ReceiveStockUseCase) Receive(ctx context.Context, in ReceiveInput) (*entity.InventoryMovement, error) {
	if in.ProductID == "" || !in.Quantity.IsPositive() || in.PurchasePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	mov := &entity.InventoryMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      entity.MovementTypeIN,
		Quantity:  in.Quantity,
		UnitPrice: in.PurchasePrice,
		Reference: strings.TrimSpace(in.Reference),
		Notes:     in.Notes,
		Date:      uc.now().UTC(),
		CreatedBy: in.UserID,
	}
	if mov.Reference == "" {
		mov.Reference = "IN-" + mov.ID[:8]
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return domain.Persistence("leer producto", err)
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if product.UnitType == entity.UnitPiece && !in.Quantity.IsInteger() {
			return domain.ErrInvalidInput
		}
		if err := inventory.NewLedger(stockRepo).ApplyDelta(ctx, in.ProductID, in.Quantity); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return domain.Persistence("registrar movimiento de entrada", err)
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", in.ProductID).Msg("entrada de mercancía rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("quantity", in.Quantity.String()).
		Str("reference", mov.Reference).
		Msg("entrada de mercancía registrada")
	return mov, nil
}
