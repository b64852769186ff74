package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineResponse línea de una venta confirmada.
type SaleLineResponse struct {
	ID        int64           `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// SaleResponse venta confirmada con sus líneas.
type SaleResponse struct {
	ID            int64              `json:"id"`
	Date          time.Time          `json:"date"`
	PaymentMethod string             `json:"payment_method"`
	GrandTotal    decimal.Decimal    `json:"grand_total"`
	Comment       string             `json:"comment,omitempty"`
	CashierID     string             `json:"cashier_id,omitempty"`
	Lines         []SaleLineResponse `json:"lines,omitempty"`
}

// SaleListResponse lista paginada de ventas (solo cabeceras).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
