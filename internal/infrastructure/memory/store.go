// Package memory implementa los puertos de persistencia en memoria. Las transacciones
// trabajan sobre una copia del estado que solo se publica si fn termina sin error, por lo
// que un rollback descarta también los cambios de stock ya aplicados.
//
// Sirve de doble para los tests de casos de uso y handlers. No está pensado para producción:
// Run copia el estado completo y serializa todas las transacciones con un solo mutex, y nada
// se persiste. cmd/api solo usa el repositorio postgres.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

type state struct {
	products  map[string]entity.Product
	suppliers map[string]entity.Supplier
	entries   map[string]entity.Entry
	exits     map[string]entity.Exit
	users     map[string]entity.User
}

func newState() *state {
	return &state{
		products:  make(map[string]entity.Product),
		suppliers: make(map[string]entity.Supplier),
		entries:   make(map[string]entity.Entry),
		exits:     make(map[string]entity.Exit),
		users:     make(map[string]entity.User),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	for k, v := range s.exits {
		c.exits[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store estado compartido. Las escrituras (dentro o fuera de transacción) se serializan.
type Store struct {
	writeMu sync.Mutex   // una transacción o escritura a la vez
	mu      sync.RWMutex // protege st
	st      *state

	failMu   sync.Mutex
	failures map[string]error
}

var _ inventory.TxRunner = (*Store)(nil)

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState(), failures: make(map[string]error)}
}

// FailOn hace que la próxima llamada a op ("entries.create", "products.update_stock", ...)
// devuelva err. Pensado para tests de rollback.
func (s *Store) FailOn(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failures[op] = err
}

func (s *Store) failure(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	err := s.failures[op]
	delete(s.failures, op)
	return err
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	tx := s.st.clone()
	s.mu.RUnlock()

	repos := inventory.TxRepos{
		Products:  &ProductRepo{s: s, tx: tx},
		Suppliers: &SupplierRepo{s: s, tx: tx},
		Entries:   &EntryRepo{s: s, tx: tx},
		Exits:     &ExitRepo{s: s, tx: tx},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = tx
	s.mu.Unlock()
	return nil
}

// view da acceso al estado: el de la transacción si existe, si no el publicado.
func (s *Store) view(tx *state, write bool, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	if write {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		s.mu.Lock()
		defer s.mu.Unlock()
		return fn(s.st)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Suppliers repositorio de proveedores fuera de transacción.
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{s: s} }

// Entries repositorio de entradas fuera de transacción.
func (s *Store) Entries() *EntryRepo { return &EntryRepo{s: s} }

// Exits repositorio de salidas fuera de transacción.
func (s *Store) Exits() *ExitRepo { return &ExitRepo{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
