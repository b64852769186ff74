package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/caja-api/internal/domain/entity"
	"github.com/jhoicas/caja-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, sale_date, payment_method, grand_total, comment, cashier_id`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera; el ID lo asigna la secuencia (RETURNING id).
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (sale_date, payment_method, grand_total, comment, cashier_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		sale.Date, sale.PaymentMethod, sale.GrandTotal, nullString(sale.Comment), nullString(sale.CashierID),
	).Scan(&sale.ID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de venta.
func (r *SaleRepo) CreateLine(ctx context.Context, line *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (sale_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, line.SaleID, line.ProductID, line.Quantity, line.UnitPrice).Scan(&line.ID); err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la cabecera bloqueándola hasta el fin de la transacción.
func (r *SaleRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) getOne(ctx context.Context, query string, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s                  entity.Sale
		comment, cashierID *string
	)
	if err := row.Scan(&s.ID, &s.Date, &s.PaymentMethod, &s.GrandTotal, &comment, &cashierID); err != nil {
		return nil, err
	}
	s.Comment = derefString(comment)
	s.CashierID = derefString(cashierID)
	return &s, nil
}

// ListLines lista las líneas de una venta en orden de inserción.
func (r *SaleRepo) ListLines(ctx context.Context, saleID int64) ([]*entity.SaleLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, sale_id, product_id, quantity, unit_price FROM sale_lines WHERE sale_id = $1 ORDER BY id`,
		saleID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// List lista cabeceras en [from, to), más recientes primero.
func (r *SaleRepo) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	filter, args := timeRange("sale_date", from, to, 3)
	query := `
		SELECT ` + saleColumns + `
		FROM sales WHERE TRUE` + filter + `
		ORDER BY sale_date DESC, id DESC LIMIT NULLIF($1, 0) OFFSET $2`
	rows, err := r.q.Query(ctx, query, append([]any{limit, offset}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// DeleteLines elimina las líneas de una venta y devuelve cuántas borró.
func (r *SaleRepo) DeleteLines(ctx context.Context, saleID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sale_lines WHERE sale_id = $1`, saleID)
	if err != nil {
		return 0, fmt.Errorf("delete sale lines: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina la cabecera. false si no existía.
func (r *SaleRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete sale: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
