package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// StockQuantity es un agregado materializado de entradas y salidas; solo cambia a través del
// libro de stock (inventory.ApplyDelta), nunca por edición directa.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal // precio unitario, >= 0
	StockQuantity int             // >= 0
	UnitMeasure   string          // UN, KG, CX, ...
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockValue devuelve precio x cantidad en stock.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}
