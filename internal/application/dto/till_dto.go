package dto

import "github.com/shopspring/decimal"

// ScanRequest body para POST /api/till/scan. Quantity opcional (productos por peso).
type ScanRequest struct {
	Barcode  string           `json:"barcode"`
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
}

// SetQuantityRequest body para PUT /api/till/items/:product_id.
type SetQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// AdjustRequest body para POST /api/till/items/:product_id/adjust (botones +/-).
type AdjustRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// CheckoutRequest body para POST /api/till/checkout.
type CheckoutRequest struct {
	PaymentMethod  string          `json:"payment_method"`
	ReceivedAmount decimal.Decimal `json:"received_amount"`
	Comment        string          `json:"comment,omitempty"`
}

// CartLineResponse línea del carrito en curso.
type CartLineResponse struct {
	ProductID string          `json:"product_id"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	UnitType  string          `json:"unit_type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// CartResponse foto del carrito en curso.
type CartResponse struct {
	Lines      []CartLineResponse `json:"lines"`
	GrandTotal decimal.Decimal    `json:"grand_total"`
}

// CheckoutResponse venta confirmada más el vuelto (solo efectivo).
type CheckoutResponse struct {
	Sale   SaleResponse    `json:"sale"`
	Change decimal.Decimal `json:"change"`
}
