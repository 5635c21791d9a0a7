package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
)

func TestSupplierCRUD(t *testing.T) {
	uc := usecase.NewSupplierUseCase(memory.NewStore().Suppliers())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.SupplierRequest{
		Name:         "Proveedor Alpha",
		ContactName:  "Carlos Alpha",
		ContactEmail: "carlos.alpha@example.com",
		ContactPhone: "(85) 1111-1111",
	})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carlos Alpha", got.ContactName)

	updated, err := uc.Update(ctx, created.ID, dto.SupplierRequest{Name: "Proveedor Alfa"})
	require.NoError(t, err)
	assert.Equal(t, "Proveedor Alfa", updated.Name)
	assert.Empty(t, updated.ContactEmail)

	list, err := uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)

	require.NoError(t, uc.Delete(ctx, created.ID))
	got, err = uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestSupplierCreate_Validaciones(t *testing.T) {
	tests := []struct {
		name string
		in   dto.SupplierRequest
	}{
		{"sin nombre", dto.SupplierRequest{Name: "  "}},
		{"email inválido", dto.SupplierRequest{Name: "Beta", ContactEmail: "beatriz-at-example"}},
		{"teléfono con letras", dto.SupplierRequest{Name: "Beta", ContactPhone: "22a2-2222"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewSupplierUseCase(memory.NewStore().Suppliers())
			_, err := uc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
