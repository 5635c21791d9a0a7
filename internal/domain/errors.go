package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Errores del libro de stock y de la validación de movimientos.
	ErrReferenceMissing  = errors.New("referencia requerida ausente")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInvalidDate       = errors.New("fecha de movimiento inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// InsufficientStockError se produce cuando un delta dejaría el stock en negativo.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	ProductID string
	Current   int
	Delta     int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s: disponible %d, solicitado %d",
		e.ProductID, e.Current, -e.Delta)
}

// Is permite comparar contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// IsValidation indica si el error corresponde a una regla de negocio (HTTP 400).
func IsValidation(err error) bool {
	return errors.Is(err, ErrReferenceMissing) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrInvalidInput)
}
