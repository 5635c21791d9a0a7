package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Estoque-api/internal/application/validation"
	"github.com/jhoicas/Estoque-api/internal/domain"
)

type sample struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,phone"`
	Qty   int    `json:"qty" validate:"gte=0"`
}

func TestStruct_Valido(t *testing.T) {
	assert.NoError(t, validation.Struct(sample{Name: "abc", Email: "a@b.com", Phone: "(85) 9999-0000"}))
}

func TestStruct_MensajesPorCampoJSON(t *testing.T) {
	err := validation.Struct(sample{Name: "", Email: "nope", Phone: "abc", Qty: -1})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name es requerido")
	assert.Contains(t, err.Error(), "email no es un email válido")
	assert.Contains(t, err.Error(), "phone solo admite")
	assert.Contains(t, err.Error(), "qty debe ser mayor o igual a 0")
}

func TestStruct_Longitud(t *testing.T) {
	err := validation.Struct(sample{Name: "demasiado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "como máximo 5")
}

type priced struct {
	Price decimal.Decimal  `json:"price" validate:"gte=0"`
	Cost  *decimal.Decimal `json:"cost" validate:"omitempty,gte=0"`
	Stock int              `json:"stock" validate:"lte=10"`
}

func TestStruct_DecimalComoNumero(t *testing.T) {
	neg := decimal.RequireFromString("-0.01")
	zero := decimal.Zero

	assert.NoError(t, validation.Struct(priced{Price: decimal.RequireFromString("9.90")}))
	assert.NoError(t, validation.Struct(priced{Cost: &zero}), "cost nil o cero es válido")

	err := validation.Struct(priced{Price: neg, Cost: &neg, Stock: 11})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "price debe ser mayor o igual a 0")
	assert.Contains(t, err.Error(), "cost debe ser mayor o igual a 0")
	assert.Contains(t, err.Error(), "stock debe ser menor o igual a 10")
}
