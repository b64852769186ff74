package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialStock es opcional.
type CreateProductRequest struct {
	Barcode      string           `json:"barcode" validate:"required,min=1,max=64"`
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	UnitType     string           `json:"unit_type" validate:"required,oneof=piece weight"`
	Price        decimal.Decimal  `json:"price"`
	InitialStock *decimal.Decimal `json:"initial_stock,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (el stock se maneja vía movimientos).
type UpdateProductRequest struct {
	Barcode  *string          `json:"barcode" validate:"omitempty,min=1,max=64"`
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	UnitType *string          `json:"unit_type" validate:"omitempty,oneof=piece weight"`
	Price    *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	UnitType  string          `json:"unit_type"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Warning   string          `json:"warning,omitempty"` // alta parcial: sin existencia inicial
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
