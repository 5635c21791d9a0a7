package inventory

import (
	"fmt"
	"math"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// Clock entrega la hora actual; "hoy" para la regla de fecha no futura.
type Clock interface {
	Now() time.Time
}

// SystemClock reloj real.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapta una función a Clock (útil en tests).
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// MaxQuantity tope de cantidad por movimiento y de stock por producto (columna INTEGER).
const MaxQuantity = math.MaxInt32

// Proposal estado propuesto de un movimiento, con las referencias ya resueltas.
// Product y Supplier nil significan referencia ausente.
type Proposal struct {
	Direction entity.Direction
	Product   *entity.Product
	Supplier  *entity.Supplier // solo entradas
	Quantity  int
	Date      time.Time
}

// Validate revisa la propuesta en orden y se detiene en la primera falla:
// producto, proveedor (entradas), cantidad, fecha y, para salidas, stock suficiente.
// El stock se evalúa contra el estado actual del producto, por lo que en una edición
// debe llamarse después de revertir el movimiento anterior.
func Validate(p Proposal, now time.Time) error {
	if p.Product == nil {
		return fmt.Errorf("%w: producto", domain.ErrReferenceMissing)
	}
	if p.Direction == entity.DirectionIn && p.Supplier == nil {
		return fmt.Errorf("%w: proveedor", domain.ErrReferenceMissing)
	}
	if p.Quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidQuantity)
	}
	if p.Quantity > MaxQuantity {
		return fmt.Errorf("%w: la cantidad no puede superar %d", domain.ErrInvalidQuantity, MaxQuantity)
	}
	if p.Date.IsZero() {
		return fmt.Errorf("%w: la fecha es obligatoria", domain.ErrInvalidDate)
	}
	if calendarDay(p.Date).After(calendarDay(now)) {
		return fmt.Errorf("%w: la fecha no puede ser futura", domain.ErrInvalidDate)
	}
	if p.Direction == entity.DirectionOut && p.Product.StockQuantity < p.Quantity {
		return &domain.InsufficientStockError{
			ProductID: p.Product.ID,
			Current:   p.Product.StockQuantity,
			Delta:     -p.Quantity,
		}
	}
	return nil
}

// calendarDay descarta la hora y la zona: compara solo año, mes y día tal como vienen.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
