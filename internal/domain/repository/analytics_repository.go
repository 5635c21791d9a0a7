package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockedProduct fila del ranking de productos por cantidad en stock.
type StockedProduct struct {
	ProductID string
	Name      string
	Quantity  int
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
// Leen datos ya consistentes; no participan del libro de stock.
type AnalyticsRepository interface {
	CountProducts(ctx context.Context) (int, error)
	// TotalStockValue suma price * stock_quantity de todos los productos.
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
	// CountLowStock cuenta productos con stock_quantity <= threshold.
	CountLowStock(ctx context.Context, threshold int) (int, error)
	CountEntriesSince(ctx context.Context, since time.Time) (int, error)
	CountExitsSince(ctx context.Context, since time.Time) (int, error)
	TopStocked(ctx context.Context, limit int) ([]StockedProduct, error)
}
