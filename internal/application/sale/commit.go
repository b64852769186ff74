package sale

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/caja-api/internal/domain"
	"github.com/jhoicas/caja-api/internal/domain/cart"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/inventory"
	"github.com/jhoicas/caja-api/internal/domain/repository"
	"github.com/jhoicas/caja-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// CommitInput datos de la venta a confirmar. Lines en el orden del carrito.
type CommitInput struct {
	Lines         []cart.LineItem
	PaymentMethod string
	Comment       string
	CashierID     string
}

// CommitSaleUseCase confirma una venta: cabecera, líneas y descuento de stock en una sola transacción.
type CommitSaleUseCase struct {
	tx  TxRunner
	log *logger.Logger
	opt options
}

// NewCommitSaleUseCase construye el caso de uso.
func NewCommitSaleUseCase(tx TxRunner, log *logger.Logger, opts ...Option) *CommitSaleUseCase {
	return &CommitSaleUseCase{tx: tx, log: log.Named("sale_commit"), opt: buildOptions(opts)}
}

// CommitCart confirma el contenido del carrito. No vacía el carrito: eso le toca al llamador
// cuando la venta se confirmó.
func (uc *CommitSaleUseCase) CommitCart(ctx context.Context, c *cart.Cart, paymentMethod, comment, cashierID string) (*entity.Sale, error) {
	if c == nil {
		return nil, domain.ErrInvalidInput
	}
	return uc.Commit(ctx, CommitInput{
		Lines:         c.Lines(),
		PaymentMethod: paymentMethod,
		Comment:       comment,
		CashierID:     cashierID,
	})
}

// Commit ejecuta Validating → Persisting → Applying → Committed. Cualquier fallo termina en
// RolledBack sin nada persistido. El total se recalcula desde las líneas.
func (uc *CommitSaleUseCase) Commit(ctx context.Context, in CommitInput) (*entity.Sale, error) {
	uc.transition(StateValidating)
	if err := validate(in); err != nil {
		uc.transition(StateRolledBack)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		uc.transition(StateRolledBack)
		return nil, err
	}

	// A partir de aquí la transacción no se interrumpe por cancelación del llamador,
	// solo por el límite configurado.
	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.opt.timeout)
	defer cancel()

	sale := &entity.Sale{
		Date:          uc.opt.now().UTC(),
		PaymentMethod: in.PaymentMethod,
		GrandTotal:    grandTotal(in.Lines),
		Comment:       in.Comment,
		CashierID:     in.CashierID,
	}

	err := uc.tx.RunSale(txCtx, func(saleRepo repository.SaleRepository, stockRepo repository.StockRepository, movRepo repository.InventoryMovementRepository) error {
		uc.transition(StatePersisting)
		if err := saleRepo.Create(txCtx, sale); err != nil {
			return domain.Persistence("insertar venta", err)
		}

		uc.transition(StateApplying)
		ledger := inventory.NewLedger(stockRepo)
		lines := make([]*entity.SaleLine, 0, len(in.Lines))
		for _, item := range in.Lines {
			available, err := ledger.Available(txCtx, item.ProductID)
			if err != nil {
				return err
			}
			if available.LessThan(item.Quantity) {
				return domain.NewStockError(item.ProductID, domain.ErrInsufficientStock)
			}

			line := &entity.SaleLine{
				SaleID:    sale.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			}
			if err := saleRepo.CreateLine(txCtx, line); err != nil {
				return domain.Persistence("insertar línea de venta", err)
			}

			if err := ledger.ApplyDelta(txCtx, item.ProductID, item.Quantity.Neg()); err != nil {
				return applyFailed(item.ProductID, err)
			}

			mov := &entity.InventoryMovement{
				ProductID: item.ProductID,
				Type:      entity.MovementTypeSALE,
				Quantity:  item.Quantity.Neg(),
				UnitPrice: item.UnitPrice,
				Reference: entity.SaleReference(sale.ID),
				Date:      sale.Date,
				CreatedBy: in.CashierID,
			}
			if err := movRepo.Create(txCtx, mov); err != nil {
				return domain.Persistence("registrar movimiento de venta", err)
			}
			lines = append(lines, line)
		}
		sale.Lines = lines
		return nil
	})
	if err != nil {
		uc.transition(StateRolledBack)
		err = asPersistence("confirmar venta", err)
		ev := uc.log.Warn().Err(err).Str("payment_method", in.PaymentMethod).Int("lines", len(in.Lines))
		if pid, ok := domain.StockProductID(err); ok {
			ev = ev.Str("product_id", pid)
		}
		ev.Msg("venta revertida")
		return nil, err
	}

	uc.transition(StateCommitted)
	uc.log.Info().
		Int64("sale_id", sale.ID).
		Str("total", sale.GrandTotal.String()).
		Str("payment_method", sale.PaymentMethod).
		Int("lines", len(sale.Lines)).
		Msg("venta confirmada")
	return sale, nil
}

func (uc *CommitSaleUseCase) transition(s CommitState) {
	uc.log.Debug().Str("state", s.String()).Msg("commit")
	if uc.opt.hook != nil {
		uc.opt.hook(s)
	}
}

func validate(in CommitInput) error {
	if len(in.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	if !entity.IsValidPaymentMethod(in.PaymentMethod) {
		return domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.ProductID == "" || !l.Quantity.IsPositive() || l.UnitPrice.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func grandTotal(lines []cart.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}

// applyFailed reporta como StockUpdateFailed cualquier fallo del descuento: la existencia
// ya se verificó dentro de la tx, así que un faltante aquí es un agotamiento concurrente.
func applyFailed(productID string, err error) error {
	if errors.Is(err, domain.ErrStockUpdateFailed) {
		return err
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		return domain.NewStockError(productID, domain.ErrStockUpdateFailed)
	}
	return domain.NewStockError(productID, fmt.Errorf("%w: %w", domain.ErrStockUpdateFailed, err))
}
