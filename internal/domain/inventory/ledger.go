// Package inventory contiene las reglas de dominio del stock: el libro que aplica deltas
// con la invariante stock >= 0 y la validación previa de movimientos.
package inventory

import (
	"fmt"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// Ledger aplica deltas de stock y recuerda qué productos modificó para que el llamador
// los persista en la misma transacción que el movimiento.
// Un Ledger vive lo que dura una transacción; no es seguro para uso concurrente.
type Ledger struct {
	touched []*entity.Product
	seen    map[*entity.Product]struct{}
}

// NewLedger crea un libro vacío.
func NewLedger() *Ledger {
	return &Ledger{seen: make(map[*entity.Product]struct{})}
}

// ApplyDelta suma delta al stock del producto. Un delta negativo que deje el stock por debajo
// de cero falla con *domain.InsufficientStockError; uno positivo que lo lleve por encima de
// MaxQuantity falla con ErrInvalidQuantity. En ambos casos el producto no cambia.
func (l *Ledger) ApplyDelta(product *entity.Product, delta int) error {
	if product == nil {
		return fmt.Errorf("%w: producto", domain.ErrReferenceMissing)
	}
	if delta < 0 && product.StockQuantity+delta < 0 {
		return &domain.InsufficientStockError{
			ProductID: product.ID,
			Current:   product.StockQuantity,
			Delta:     delta,
		}
	}
	if delta > 0 && product.StockQuantity > MaxQuantity-delta {
		return fmt.Errorf("%w: el stock del producto %s superaría %d", domain.ErrInvalidQuantity, product.ID, MaxQuantity)
	}
	product.StockQuantity += delta
	if _, ok := l.seen[product]; !ok {
		l.seen[product] = struct{}{}
		l.touched = append(l.touched, product)
	}
	return nil
}

// Credit incrementa el stock en qty (> 0).
func (l *Ledger) Credit(product *entity.Product, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidQuantity)
	}
	return l.ApplyDelta(product, qty)
}

// Debit disminuye el stock en qty (> 0).
func (l *Ledger) Debit(product *entity.Product, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidQuantity)
	}
	return l.ApplyDelta(product, -qty)
}

// Apply aplica el efecto de un movimiento con la dirección dada.
func (l *Ledger) Apply(product *entity.Product, dir entity.Direction, qty int) error {
	if dir == entity.DirectionOut {
		return l.Debit(product, qty)
	}
	return l.Credit(product, qty)
}

// Reverse deshace el efecto de un movimiento previamente aplicado.
func (l *Ledger) Reverse(product *entity.Product, dir entity.Direction, qty int) error {
	if dir == entity.DirectionOut {
		return l.Credit(product, qty)
	}
	return l.Debit(product, qty)
}

// Touched devuelve los productos modificados, en el orden en que se tocaron por primera vez.
func (l *Ledger) Touched() []*entity.Product {
	out := make([]*entity.Product, len(l.touched))
	copy(out, l.touched)
	return out
}
