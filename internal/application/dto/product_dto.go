package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// InitialStock es el saldo de apertura; después el stock solo cambia con entradas y salidas.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Description  string          `json:"description" validate:"max=500"`
	Price        decimal.Decimal `json:"price" validate:"gte=0"`
	UnitMeasure  string          `json:"unit_measure" validate:"required,max=50"`
	InitialStock int             `json:"initial_stock" validate:"gte=0,lte=2147483647"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	UnitMeasure *string          `json:"unit_measure" validate:"omitempty,min=1,max=50"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	UnitMeasure   string          `json:"unit_measure"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
