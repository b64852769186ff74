package sale

import (
	"context"

	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/inventory"
	"github.com/jhoicas/caja-api/internal/domain/repository"
	"github.com/jhoicas/caja-api/pkg/logger"
)

// ReverseSaleUseCase elimina una venta confirmada devolviendo al stock las cantidades vendidas.
type ReverseSaleUseCase struct {
	tx  TxRunner
	log *logger.Logger
	opt options
}

// NewReverseSaleUseCase construye el caso de uso.
func NewReverseSaleUseCase(tx TxRunner, log *logger.Logger, opts ...Option) *ReverseSaleUseCase {
	return &ReverseSaleUseCase{tx: tx, log: log.Named("sale_reversal"), opt: buildOptions(opts)}
}

// Reverse restaura el stock de cada línea, borra líneas y cabecera en una transacción.
// ErrNotFound si no existe ni cabecera ni líneas para saleID.
func (uc *ReverseSaleUseCase) Reverse(ctx context.Context, saleID int64, userID string) error {
	if saleID <= 0 {
		return domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.opt.timeout)
	defer cancel()

	var restored int
	err := uc.tx.RunSale(txCtx, func(saleRepo repository.SaleRepository, stockRepo repository.StockRepository, movRepo repository.InventoryMovementRepository) error {
		header, err := saleRepo.GetByIDForUpdate(txCtx, saleID)
		if err != nil {
			return domain.Persistence("leer venta", err)
		}
		lines, err := saleRepo.ListLines(txCtx, saleID)
		if err != nil {
			return domain.Persistence("leer líneas de venta", err)
		}
		if header == nil && len(lines) == 0 {
			return domain.ErrNotFound
		}

		ledger := inventory.NewLedger(stockRepo)
		now := uc.opt.now().UTC()
		for _, l := range lines {
			if err := ledger.ApplyDelta(txCtx, l.ProductID, l.Quantity); err != nil {
				return err
			}
			mov := &entity.InventoryMovement{
				ProductID: l.ProductID,
				Type:      entity.MovementTypeRETURN,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				Reference: entity.ReturnReference(saleID),
				Date:      now,
				CreatedBy: userID,
			}
			if err := movRepo.Create(txCtx, mov); err != nil {
				return domain.Persistence("registrar movimiento de reversión", err)
			}
		}

		if _, err := saleRepo.DeleteLines(txCtx, saleID); err != nil {
			return domain.Persistence("eliminar líneas de venta", err)
		}
		if _, err := saleRepo.Delete(txCtx, saleID); err != nil {
			return domain.Persistence("eliminar venta", err)
		}
		restored = len(lines)
		return nil
	})
	if err != nil {
		err = asPersistence("revertir venta", err)
		uc.log.Warn().Err(err).Int64("sale_id", saleID).Msg("reversión abortada")
		return err
	}

	uc.log.Info().Int64("sale_id", saleID).Int("lines", restored).Str("user_id", userID).Msg("venta revertida")
	return nil
}
