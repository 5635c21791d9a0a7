package repository

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// ProductFilter filtros y paginación para listar productos. Limit <= 0 devuelve todos.
type ProductFilter struct {
	Name   string
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update modifica los datos descriptivos; nunca el stock.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock persiste la cantidad calculada por el libro de stock.
	UpdateStock(ctx context.Context, id string, quantity int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) error
}
