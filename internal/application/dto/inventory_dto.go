package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha de movimiento en la API.
const DateLayout = "2006-01-02"

// EntryRequest body para POST/PUT /api/entries.
// Quantity nil se trata como cantidad ausente (inválida).
type EntryRequest struct {
	ProductID    string           `json:"product_id"`
	SupplierID   string           `json:"supplier_id"`
	Quantity     *int             `json:"quantity"`
	MovementDate string           `json:"movement_date"` // YYYY-MM-DD
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty" validate:"omitempty,gte=0"`
	Note         string           `json:"note" validate:"max=1000"`
}

// ExitRequest body para POST/PUT /api/exits.
type ExitRequest struct {
	ProductID    string `json:"product_id"`
	Quantity     *int   `json:"quantity"`
	MovementDate string `json:"movement_date"` // YYYY-MM-DD
	Reason       string `json:"reason" validate:"max=255"`
	Customer     string `json:"customer" validate:"max=255"`
	Note         string `json:"note" validate:"max=1000"`
}

// EntryResponse salida de una entrada, con nombres de producto y proveedor.
type EntryResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	ProductName  string           `json:"product_name"`
	SupplierID   string           `json:"supplier_id"`
	SupplierName string           `json:"supplier_name"`
	Quantity     int              `json:"quantity"`
	MovementDate string           `json:"movement_date"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalValue   decimal.Decimal  `json:"total_value"`
	Note         string           `json:"note"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ExitResponse salida de una salida de producto.
type ExitResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	MovementDate string    `json:"movement_date"`
	Reason       string    `json:"reason"`
	Customer     string    `json:"customer"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MovementListQuery filtros de GET /api/entries y /api/exits. From/To en YYYY-MM-DD.
type MovementListQuery struct {
	ProductID  string
	SupplierID string
	From       string
	To         string
	Page       PageRequest
}

// EntryListResponse lista paginada de entradas.
type EntryListResponse struct {
	Items []EntryResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ExitListResponse lista paginada de salidas.
type ExitListResponse struct {
	Items []ExitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
