package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas del dashboard sobre el estado publicado.
type AnalyticsRepo struct{ s *Store }

// Analytics repositorio de métricas.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

func (r *AnalyticsRepo) CountProducts(_ context.Context) (int, error) {
	var n int
	err := r.s.view(nil, false, func(st *state) error {
		n = len(st.products)
		return nil
	})
	return n, err
}

func (r *AnalyticsRepo) TotalStockValue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.s.view(nil, false, func(st *state) error {
		for _, p := range st.products {
			total = total.Add(p.StockValue())
		}
		return nil
	})
	return total, err
}

func (r *AnalyticsRepo) CountLowStock(_ context.Context, threshold int) (int, error) {
	var n int
	err := r.s.view(nil, false, func(st *state) error {
		for _, p := range st.products {
			if p.StockQuantity <= threshold {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *AnalyticsRepo) CountEntriesSince(_ context.Context, since time.Time) (int, error) {
	var n int
	err := r.s.view(nil, false, func(st *state) error {
		for _, e := range st.entries {
			if !e.MovementDate.Before(since) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *AnalyticsRepo) CountExitsSince(_ context.Context, since time.Time) (int, error) {
	var n int
	err := r.s.view(nil, false, func(st *state) error {
		for _, x := range st.exits {
			if !x.MovementDate.Before(since) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *AnalyticsRepo) TopStocked(_ context.Context, limit int) ([]repository.StockedProduct, error) {
	var out []repository.StockedProduct
	err := r.s.view(nil, false, func(st *state) error {
		for _, p := range st.products {
			out = append(out, repository.StockedProduct{ProductID: p.ID, Name: p.Name, Quantity: p.StockQuantity})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	return page(out, limit, 0), err
}
