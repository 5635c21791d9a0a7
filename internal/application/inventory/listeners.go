package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// StockListener aplica o revierte el efecto del movimiento en el libro de stock.
func StockListener(_ context.Context, ev StockEvent) error {
	if ev.Ledger == nil || ev.Movement == nil {
		return fmt.Errorf("evento de stock incompleto: %s", ev.Kind)
	}
	switch ev.Kind {
	case EventStockApplied:
		return ev.Ledger.Apply(ev.Product, ev.Movement.Direction(), ev.Movement.Qty())
	case EventStockReversed:
		return ev.Ledger.Reverse(ev.Product, ev.Movement.Direction(), ev.Movement.Qty())
	}
	return fmt.Errorf("tipo de evento desconocido: %s", ev.Kind)
}

// NewAuditListener registra en el log cada efecto de stock ya aplicado.
// Debe suscribirse después de StockListener.
func NewAuditListener(log *logger.Logger) Listener {
	return func(_ context.Context, ev StockEvent) error {
		if ev.Product == nil || ev.Movement == nil {
			return nil
		}
		delta := int(ev.Movement.Direction()) * ev.Movement.Qty()
		if ev.Kind == EventStockReversed {
			delta = -delta
		}
		log.Info().
			Str("event", string(ev.Kind)).
			Str("movement_type", ev.Movement.MovementType()).
			Str("movement_id", ev.Movement.MovementID()).
			Str("product_id", ev.Product.ID).
			Int("delta", delta).
			Int("stock", ev.Product.StockQuantity).
			Msg("stock actualizado")
		return nil
	}
}

// NewStockDispatcher arma el despachador de la aplicación: libro de stock y, si hay logger,
// auditoría.
func NewStockDispatcher(log *logger.Logger) *Dispatcher {
	d := NewDispatcher()
	d.Subscribe(StockListener, EventStockApplied, EventStockReversed)
	if log != nil {
		d.Subscribe(NewAuditListener(log), EventStockApplied, EventStockReversed)
	}
	return d
}
