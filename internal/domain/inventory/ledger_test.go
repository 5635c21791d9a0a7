package inventory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
)

func product(id string, stock int) *entity.Product {
	return &entity.Product{ID: id, Name: "Producto " + id, StockQuantity: stock}
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDelta
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDelta_DeltaPositivoIncrementa(t *testing.T) {
	l := inventory.NewLedger()
	p := product("p1", 3)

	require.NoError(t, l.ApplyDelta(p, 7))
	assert.Equal(t, 10, p.StockQuantity)
	assert.Equal(t, []*entity.Product{p}, l.Touched())
}

func TestApplyDelta_DejarEnCeroEsValido(t *testing.T) {
	l := inventory.NewLedger()
	p := product("p1", 5)

	require.NoError(t, l.ApplyDelta(p, -5))
	assert.Equal(t, 0, p.StockQuantity)
}

func TestApplyDelta_StockNegativoRechazadoSinMutar(t *testing.T) {
	l := inventory.NewLedger()
	p := product("p1", 4)

	err := l.ApplyDelta(p, -5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 4, stockErr.Current)
	assert.Equal(t, -5, stockErr.Delta)
	assert.Equal(t, "p1", stockErr.ProductID)

	assert.Equal(t, 4, p.StockQuantity, "el stock no debe cambiar")
	assert.Empty(t, l.Touched(), "un delta rechazado no marca el producto")
}

func TestApplyDelta_ProductoNilEsReferenciaAusente(t *testing.T) {
	err := inventory.NewLedger().ApplyDelta(nil, 1)
	assert.ErrorIs(t, err, domain.ErrReferenceMissing)
}

func TestApplyDelta_MismoProductoSeMarcaUnaVez(t *testing.T) {
	l := inventory.NewLedger()
	a := product("a", 10)
	b := product("b", 0)

	require.NoError(t, l.Debit(a, 10))
	require.NoError(t, l.Credit(b, 5))
	require.NoError(t, l.Credit(a, 3))

	assert.Equal(t, []*entity.Product{a, b}, l.Touched())
}

// ──────────────────────────────────────────────────────────────────────────────
// Credit / Debit / Apply / Reverse
// ──────────────────────────────────────────────────────────────────────────────

func TestCreditDebit_CantidadNoPositiva(t *testing.T) {
	l := inventory.NewLedger()
	p := product("p1", 10)

	for _, qty := range []int{0, -1} {
		assert.ErrorIs(t, l.Credit(p, qty), domain.ErrInvalidQuantity)
		assert.ErrorIs(t, l.Debit(p, qty), domain.ErrInvalidQuantity)
	}
	assert.Equal(t, 10, p.StockQuantity)
}

func TestApplyReverse_SonInversos(t *testing.T) {
	tests := []struct {
		name string
		dir  entity.Direction
	}{
		{"entrada", entity.DirectionIn},
		{"salida", entity.DirectionOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := inventory.NewLedger()
			p := product("p1", 20)

			require.NoError(t, l.Apply(p, tt.dir, 5))
			assert.Equal(t, 20+int(tt.dir)*5, p.StockQuantity)

			require.NoError(t, l.Reverse(p, tt.dir, 5))
			assert.Equal(t, 20, p.StockQuantity)
		})
	}
}

func TestReverse_EntradaYaConsumidaFalla(t *testing.T) {
	l := inventory.NewLedger()
	p := product("p1", 2) // entrada de 10 de la que ya salieron 8

	err := l.Reverse(p, entity.DirectionIn, 10)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, p.StockQuantity)
}

func TestApplyDelta_CreditoNoDesbordaElTope(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		delta int
	}{
		{"stock en el tope", inventory.MaxQuantity, 1},
		{"suma supera el tope", inventory.MaxQuantity - 5, 6},
		{"stock de int máximo", math.MaxInt, 1},
		{"delta de int máximo", 1, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := inventory.NewLedger()
			p := product("p1", tt.stock)

			err := l.ApplyDelta(p, tt.delta)
			assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
			assert.Equal(t, tt.stock, p.StockQuantity, "el stock no debe cambiar")
			assert.Empty(t, l.Touched())
		})
	}
}

func TestApplyDelta_LlegarAlTopeEsValido(t *testing.T) {
	l := inventory.NewLedger()
	p := product("p1", inventory.MaxQuantity-5)

	require.NoError(t, l.Credit(p, 5))
	assert.Equal(t, inventory.MaxQuantity, p.StockQuantity)
}
