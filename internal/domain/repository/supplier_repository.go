package repository

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// SupplierFilter filtros y paginación para listar proveedores.
type SupplierFilter struct {
	Name   string
	Limit  int
	Offset int
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context, filter SupplierFilter) ([]*entity.Supplier, int, error)
	Delete(ctx context.Context, id string) error
}
