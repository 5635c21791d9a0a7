package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction es el signo con que un movimiento afecta el stock.
type Direction int

const (
	DirectionIn  Direction = 1  // entrada
	DirectionOut Direction = -1 // salida
)

// Tipos de movimiento.
const (
	MovementTypeEntry = "ENTRY"
	MovementTypeExit  = "EXIT"
)

// Movement es la vista común de Entry y Exit.
type Movement interface {
	MovementID() string
	MovementType() string
	ProductRef() string
	Qty() int
	Date() time.Time
	Direction() Direction
}

// MovementBase campos compartidos por entradas y salidas.
type MovementBase struct {
	ID           string
	ProductID    string
	Quantity     int
	MovementDate time.Time
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Solo lectura, se rellena con JOIN al listar.
	ProductName string
}

func (m *MovementBase) MovementID() string { return m.ID }
func (m *MovementBase) ProductRef() string { return m.ProductID }
func (m *MovementBase) Qty() int           { return m.Quantity }
func (m *MovementBase) Date() time.Time    { return m.MovementDate }

// Entry incrementa el stock del producto.
type Entry struct {
	MovementBase
	SupplierID string
	UnitCost   *decimal.Decimal // opcional

	SupplierName string
}

func (e *Entry) MovementType() string { return MovementTypeEntry }
func (e *Entry) Direction() Direction { return DirectionIn }

// TotalValue cantidad x costo unitario, cero si no hay costo.
func (e *Entry) TotalValue() decimal.Decimal {
	if e.UnitCost == nil {
		return decimal.Zero
	}
	return e.UnitCost.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Exit disminuye el stock del producto.
type Exit struct {
	MovementBase
	Reason   string
	Customer string
}

func (x *Exit) MovementType() string { return MovementTypeExit }
func (x *Exit) Direction() Direction { return DirectionOut }

var (
	_ Movement = (*Entry)(nil)
	_ Movement = (*Exit)(nil)
)
