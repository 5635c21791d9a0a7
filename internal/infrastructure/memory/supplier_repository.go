package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	s  *Store
	tx *state
}

func (r *SupplierRepo) Create(_ context.Context, supplier *entity.Supplier) error {
	return r.s.view(r.tx, true, func(st *state) error {
		if _, ok := st.suppliers[supplier.ID]; ok {
			return domain.ErrDuplicate
		}
		st.suppliers[supplier.ID] = *supplier
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.s.view(r.tx, false, func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Update(_ context.Context, supplier *entity.Supplier) error {
	return r.s.view(r.tx, true, func(st *state) error {
		if _, ok := st.suppliers[supplier.ID]; ok {
			st.suppliers[supplier.ID] = *supplier
		}
		return nil
	})
}

func (r *SupplierRepo) List(_ context.Context, filter repository.SupplierFilter) ([]*entity.Supplier, int, error) {
	var all []*entity.Supplier
	err := r.s.view(r.tx, false, func(st *state) error {
		name := strings.ToLower(filter.Name)
		for _, s := range st.suppliers {
			if name != "" && !strings.Contains(strings.ToLower(s.Name), name) {
				continue
			}
			s := s
			all = append(all, &s)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, filter.Limit, filter.Offset), len(all), nil
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	return r.s.view(r.tx, true, func(st *state) error {
		for _, e := range st.entries {
			if e.SupplierID == id {
				return domain.ErrConflict
			}
		}
		delete(st.suppliers, id)
		return nil
	})
}
