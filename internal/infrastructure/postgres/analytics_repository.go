package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) count(ctx context.Context, name, query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.%s: %w", name, err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	return r.count(ctx, "CountProducts", `SELECT COUNT(*) FROM products`)
}

// TotalStockValue Σ price × stock_quantity. Sin productos devuelve 0.
func (r *AnalyticsRepo) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(price * stock_quantity), 0) FROM products`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.TotalStockValue: %w", err)
	}
	return total, nil
}

func (r *AnalyticsRepo) CountLowStock(ctx context.Context, threshold int) (int, error) {
	return r.count(ctx, "CountLowStock", `SELECT COUNT(*) FROM products WHERE stock_quantity <= $1`, threshold)
}

func (r *AnalyticsRepo) CountEntriesSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, "CountEntriesSince", `SELECT COUNT(*) FROM product_entries WHERE movement_date >= $1`, since)
}

func (r *AnalyticsRepo) CountExitsSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, "CountExitsSince", `SELECT COUNT(*) FROM product_exits WHERE movement_date >= $1`, since)
}

// TopStocked productos con más unidades en stock; empate por nombre.
func (r *AnalyticsRepo) TopStocked(ctx context.Context, limit int) ([]repository.StockedProduct, error) {
	const query = `
	SELECT id, name, stock_quantity
	FROM products
	ORDER BY stock_quantity DESC, name
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopStocked: %w", err)
	}
	defer rows.Close()

	results := make([]repository.StockedProduct, 0, limit)
	for rows.Next() {
		var row repository.StockedProduct
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Quantity); err != nil {
			return nil, fmt.Errorf("analytics.TopStocked scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
