package dto

import "github.com/shopspring/decimal"

// DashboardOverviewDTO respuesta de GET /api/dashboard/overview.
type DashboardOverviewDTO struct {
	TotalProducts   int             `json:"total_products"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"` // Σ price * stock_quantity
	LowStockItems   int             `json:"low_stock_items"`   // stock <= umbral
	MonthlyEntries  int             `json:"monthly_entries"`   // entradas con fecha >= día 1 del mes
	MonthlyExits    int             `json:"monthly_exits"`
	TopProducts     []TopProductDTO `json:"top_products"` // top 5 por cantidad en stock
	DateLabel       string          `json:"date_label"`   // ej: "Octubre 2026"
}

// TopProductDTO producto del ranking por stock.
type TopProductDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}
