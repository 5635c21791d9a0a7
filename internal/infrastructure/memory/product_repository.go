package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s  *Store
	tx *state
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	if err := r.s.failure("products.create"); err != nil {
		return err
	}
	return r.s.view(r.tx, true, func(st *state) error {
		if _, ok := st.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[product.ID] = *product
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.view(r.tx, false, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya es exclusiva.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	if err := r.s.failure("products.update"); err != nil {
		return err
	}
	return r.s.view(r.tx, true, func(st *state) error {
		cur, ok := st.products[product.ID]
		if !ok {
			return nil
		}
		stock := cur.StockQuantity
		cur = *product
		cur.StockQuantity = stock
		st.products[product.ID] = cur
		return nil
	})
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, quantity int) error {
	if err := r.s.failure("products.update_stock"); err != nil {
		return err
	}
	return r.s.view(r.tx, true, func(st *state) error {
		cur, ok := st.products[id]
		if !ok {
			return fmt.Errorf("update stock: producto %s no existe", id)
		}
		if quantity < 0 {
			return fmt.Errorf("update stock: check constraint stock_quantity >= 0")
		}
		cur.StockQuantity = quantity
		st.products[id] = cur
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var all []*entity.Product
	err := r.s.view(r.tx, false, func(st *state) error {
		name := strings.ToLower(filter.Name)
		for _, p := range st.products {
			if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
				continue
			}
			p := p
			all = append(all, &p)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, filter.Limit, filter.Offset), len(all), nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.s.view(r.tx, true, func(st *state) error {
		for _, e := range st.entries {
			if e.ProductID == id {
				return domain.ErrConflict
			}
		}
		for _, x := range st.exits {
			if x.ProductID == id {
				return domain.ErrConflict
			}
		}
		delete(st.products, id)
		return nil
	})
}
