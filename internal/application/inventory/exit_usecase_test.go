package inventory_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
)

func exitReq(productID string, q int) dto.ExitRequest {
	return dto.ExitRequest{
		ProductID:    productID,
		Quantity:     qty(q),
		MovementDate: todayStr,
		Reason:       "VENDA",
		Customer:     "Cliente Final",
	}
}

func TestExitCreate_DebitaStock(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 20)

	out, err := f.exits.Create(context.Background(), exitReq("p1", 5))

	require.NoError(t, err)
	assert.Equal(t, 15, f.stock(t, "p1"))
	assert.Equal(t, "VENDA", out.Reason)
	assert.Equal(t, "Producto p1", out.ProductName)
}

func TestExitCreate_StockInsuficienteNoMuta(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 4)

	_, err := f.exits.Create(context.Background(), exitReq("p1", 5))

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 4, stockErr.Current)
	assert.Equal(t, -5, stockErr.Delta)
	assert.Equal(t, 4, f.stock(t, "p1"))
}

func TestExitCreate_Validaciones(t *testing.T) {
	tests := []struct {
		name string
		in   dto.ExitRequest
		want error
	}{
		{"sin producto", exitReq("", 1), domain.ErrReferenceMissing},
		{"producto inexistente", exitReq("nope", 1), domain.ErrNotFound},
		{"cantidad sobre el tope", exitReq("p1", inventory.MaxQuantity+1), domain.ErrInvalidQuantity},
		{"cantidad negativa", exitReq("p1", -2), domain.ErrInvalidQuantity},
		{"sin fecha", dto.ExitRequest{ProductID: "p1", Quantity: qty(1)}, domain.ErrInvalidDate},
		{"motivo demasiado largo", dto.ExitRequest{ProductID: "p1", Quantity: qty(1), MovementDate: todayStr, Reason: strings.Repeat("x", 256)}, domain.ErrInvalidInput},
		{"cliente demasiado largo", dto.ExitRequest{ProductID: "p1", Quantity: qty(1), MovementDate: todayStr, Customer: strings.Repeat("x", 256)}, domain.ErrInvalidInput},
		{"nota demasiado larga", dto.ExitRequest{ProductID: "p1", Quantity: qty(1), MovementDate: todayStr, Note: strings.Repeat("x", 1001)}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.addProduct(t, "p1", 10)

			_, err := f.exits.Create(context.Background(), tt.in)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 10, f.stock(t, "p1"))
		})
	}
}

func TestEntradaLuegoSalida_ReplayEquivalente(t *testing.T) {
	for _, q2 := range []int{0, 1, 6, 10} {
		f := newFixture(t)
		f.addProduct(t, "p1", 0)
		f.addSupplier(t, "s1")
		ctx := context.Background()

		_, err := f.entries.Create(ctx, entryReq("p1", "s1", 10))
		require.NoError(t, err)
		if q2 > 0 {
			_, err = f.exits.Create(ctx, exitReq("p1", q2))
			require.NoError(t, err)
		}
		assert.Equal(t, 10-q2, f.stock(t, "p1"))
	}
}

func TestExitUpdate_ValidaContraStockRevertido(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 10)
	ctx := context.Background()
	created, err := f.exits.Create(ctx, exitReq("p1", 8))
	require.NoError(t, err)
	require.Equal(t, 2, f.stock(t, "p1"))

	// 9 > 2 disponibles, pero tras revertir hay 10
	out, err := f.exits.Update(ctx, created.ID, exitReq("p1", 9))

	require.NoError(t, err)
	assert.Equal(t, 9, out.Quantity)
	assert.Equal(t, 1, f.stock(t, "p1"))
}

func TestExitUpdate_ExcedeStockRevertidoHaceRollback(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 10)
	ctx := context.Background()
	created, err := f.exits.Create(ctx, exitReq("p1", 8))
	require.NoError(t, err)

	_, err = f.exits.Update(ctx, created.ID, exitReq("p1", 11))

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 10, stockErr.Current, "se informa el stock posterior a la reversión")
	assert.Equal(t, 2, f.stock(t, "p1"), "la reversión no debe persistir")
}

func TestExitUpdate_CambiaDeProducto(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "a", 10)
	f.addProduct(t, "b", 10)
	ctx := context.Background()
	created, err := f.exits.Create(ctx, exitReq("a", 4))
	require.NoError(t, err)

	_, err = f.exits.Update(ctx, created.ID, exitReq("b", 3))

	require.NoError(t, err)
	assert.Equal(t, 10, f.stock(t, "a"))
	assert.Equal(t, 7, f.stock(t, "b"))
}

func TestExitUpdate_FalloAlGuardarHaceRollback(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 10)
	ctx := context.Background()
	created, err := f.exits.Create(ctx, exitReq("p1", 3))
	require.NoError(t, err)
	boom := errors.New("conexión perdida")
	f.store.FailOn("exits.update", boom)

	_, err = f.exits.Update(ctx, created.ID, exitReq("p1", 1))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 7, f.stock(t, "p1"))
}

func TestExitDelete_DevuelveStock(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 20)
	ctx := context.Background()
	created, err := f.exits.Create(ctx, exitReq("p1", 5))
	require.NoError(t, err)
	require.Equal(t, 15, f.stock(t, "p1"))

	require.NoError(t, f.exits.Delete(ctx, created.ID))

	assert.Equal(t, 20, f.stock(t, "p1"))
}

func TestExitDelete_FalloAlBorrarHaceRollback(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 20)
	ctx := context.Background()
	created, err := f.exits.Create(ctx, exitReq("p1", 5))
	require.NoError(t, err)
	f.store.FailOn("exits.delete", errors.New("timeout"))

	assert.Error(t, f.exits.Delete(ctx, created.ID))
	assert.Equal(t, 15, f.stock(t, "p1"))
	got, err := f.exits.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestExitDelete_NoExiste(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.exits.Delete(context.Background(), "missing"), domain.ErrNotFound)
}

func TestStockNuncaNegativo_SecuenciaMixta(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 0)
	f.addSupplier(t, "s1")
	ctx := context.Background()

	e1, err := f.entries.Create(ctx, entryReq("p1", "s1", 5))
	require.NoError(t, err)
	x1, err := f.exits.Create(ctx, exitReq("p1", 5))
	require.NoError(t, err)

	_, err = f.exits.Create(ctx, exitReq("p1", 1))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, f.entries.Delete(ctx, e1.ID), domain.ErrInsufficientStock)

	require.NoError(t, f.exits.Delete(ctx, x1.ID))
	require.NoError(t, f.entries.Delete(ctx, e1.ID))
	assert.Equal(t, 0, f.stock(t, "p1"))
}
