package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// MovementFilter filtros comunes para listar entradas y salidas.
// SupplierID solo aplica a entradas. From/To comparan contra la fecha del movimiento (inclusive).
type MovementFilter struct {
	ProductID  string
	SupplierID string
	From       *time.Time
	To         *time.Time
	Limit      int // <= 0: sin límite
	Offset     int
}

// EntryRepository puerto de persistencia para entradas de producto.
type EntryRepository interface {
	Create(ctx context.Context, entry *entity.Entry) error
	GetByID(ctx context.Context, id string) (*entity.Entry, error)
	Update(ctx context.Context, entry *entity.Entry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Entry, int, error)
}

// ExitRepository puerto de persistencia para salidas de producto.
type ExitRepository interface {
	Create(ctx context.Context, exit *entity.Exit) error
	GetByID(ctx context.Context, id string) (*entity.Exit, error)
	Update(ctx context.Context, exit *entity.Exit) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Exit, int, error)
}
