package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var (
	_ repository.EntryRepository = (*EntryRepo)(nil)
	_ repository.ExitRepository  = (*ExitRepo)(nil)
)

func matches(m *entity.MovementBase, f repository.MovementFilter) bool {
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	if f.From != nil && m.MovementDate.Before(*f.From) {
		return false
	}
	if f.To != nil && m.MovementDate.After(*f.To) {
		return false
	}
	return true
}

func newerFirst(a, b *entity.MovementBase) bool {
	if !a.MovementDate.Equal(b.MovementDate) {
		return a.MovementDate.After(b.MovementDate)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// EntryRepo entradas en memoria.
type EntryRepo struct {
	s  *Store
	tx *state
}

func (r *EntryRepo) Create(_ context.Context, entry *entity.Entry) error {
	if err := r.s.failure("entries.create"); err != nil {
		return err
	}
	return r.s.view(r.tx, true, func(st *state) error {
		if _, ok := st.products[entry.ProductID]; !ok {
			return fmt.Errorf("insert entry: %w", domain.ErrConflict)
		}
		if _, ok := st.suppliers[entry.SupplierID]; !ok {
			return fmt.Errorf("insert entry: %w", domain.ErrConflict)
		}
		st.entries[entry.ID] = *entry
		return nil
	})
}

func (r *EntryRepo) GetByID(_ context.Context, id string) (*entity.Entry, error) {
	var out *entity.Entry
	err := r.s.view(r.tx, false, func(st *state) error {
		if e, ok := st.entries[id]; ok {
			fillEntry(st, &e)
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *EntryRepo) Update(_ context.Context, entry *entity.Entry) error {
	if err := r.s.failure("entries.update"); err != nil {
		return err
	}
	return r.s.view(r.tx, true, func(st *state) error {
		if _, ok := st.entries[entry.ID]; ok {
			st.entries[entry.ID] = *entry
		}
		return nil
	})
}

func (r *EntryRepo) Delete(_ context.Context, id string) error {
	if err := r.s.failure("entries.delete"); err != nil {
		return err
	}
	return r.s.view(r.tx, true, func(st *state) error {
		delete(st.entries, id)
		return nil
	})
}

func (r *EntryRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Entry, int, error) {
	var all []*entity.Entry
	err := r.s.view(r.tx, false, func(st *state) error {
		for _, e := range st.entries {
			if !matches(&e.MovementBase, f) || (f.SupplierID != "" && e.SupplierID != f.SupplierID) {
				continue
			}
			e := e
			fillEntry(st, &e)
			all = append(all, &e)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(all, func(i, j int) bool { return newerFirst(&all[i].MovementBase, &all[j].MovementBase) })
	return page(all, f.Limit, f.Offset), len(all), nil
}

func fillEntry(st *state, e *entity.Entry) {
	e.ProductName = st.products[e.ProductID].Name
	e.SupplierName = st.suppliers[e.SupplierID].Name
}

// ExitRepo salidas en memoria.
type ExitRepo struct {
	s  *Store
	tx *state
}

func (r *ExitRepo) Create(_ context.Context, exit *entity.Exit) error {
	if err := r.s.failure("exits.create"); err != nil {
		return err
	}
	return r.s.view(r.tx, true, func(st *state) error {
		if _, ok := st.products[exit.ProductID]; !ok {
			return fmt.Errorf("insert exit: %w", domain.ErrConflict)
		}
		st.exits[exit.ID] = *exit
		return nil
	})
}

func (r *ExitRepo) GetByID(_ context.Context, id string) (*entity.Exit, error) {
	var out *entity.Exit
	err := r.s.view(r.tx, false, func(st *state) error {
		if x, ok := st.exits[id]; ok {
			x.ProductName = st.products[x.ProductID].Name
			out = &x
		}
		return nil
	})
	return out, err
}

func (r *ExitRepo) Update(_ context.Context, exit *entity.Exit) error {
	if err := r.s.failure("exits.update"); err != nil {
		return err
	}
	return r.s.view(r.tx, true, func(st *state) error {
		if _, ok := st.exits[exit.ID]; ok {
			st.exits[exit.ID] = *exit
		}
		return nil
	})
}

func (r *ExitRepo) Delete(_ context.Context, id string) error {
	if err := r.s.failure("exits.delete"); err != nil {
		return err
	}
	return r.s.view(r.tx, true, func(st *state) error {
		delete(st.exits, id)
		return nil
	})
}

func (r *ExitRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Exit, int, error) {
	var all []*entity.Exit
	err := r.s.view(r.tx, false, func(st *state) error {
		for _, x := range st.exits {
			if !matches(&x.MovementBase, f) {
				continue
			}
			x := x
			x.ProductName = st.products[x.ProductID].Name
			all = append(all, &x)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(all, func(i, j int) bool { return newerFirst(&all[i].MovementBase, &all[j].MovementBase) })
	return page(all, f.Limit, f.Offset), len(all), nil
}
