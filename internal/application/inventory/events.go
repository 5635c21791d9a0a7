package inventory

import (
	"context"
	"sync"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
)

// EventKind tipo de evento de stock.
type EventKind string

const (
	// EventStockApplied el efecto de un movimiento debe aplicarse al producto.
	EventStockApplied EventKind = "stock.applied"
	// EventStockReversed el efecto de un movimiento ya aplicado debe deshacerse.
	EventStockReversed EventKind = "stock.reversed"
)

// StockEvent se publica dentro de la transacción del movimiento. Ledger es el libro de esa
// transacción: los listeners mutan el producto a través de él y el caso de uso persiste
// los productos tocados al final.
type StockEvent struct {
	Kind     EventKind
	Movement entity.Movement
	Product  *entity.Product
	Ledger   *inventory.Ledger
}

// Listener reacciona a un evento. Un error aborta la publicación y la transacción.
type Listener func(ctx context.Context, ev StockEvent) error

// EventPublisher publica de forma síncrona: todos los listeners terminan antes de que
// Publish retorne.
type EventPublisher interface {
	Publish(ctx context.Context, ev StockEvent) error
}

// Dispatcher despachador en proceso. Ejecuta los listeners en orden de suscripción y se
// detiene en el primer error.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[EventKind][]Listener
}

var _ EventPublisher = (*Dispatcher)(nil)

// NewDispatcher crea un despachador sin listeners.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventKind][]Listener)}
}

// Subscribe registra l para los tipos indicados.
func (d *Dispatcher) Subscribe(l Listener, kinds ...EventKind) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, k := range kinds {
		d.listeners[k] = append(d.listeners[k], l)
	}
}

// Publish invoca en línea los listeners del tipo del evento.
func (d *Dispatcher) Publish(ctx context.Context, ev StockEvent) error {
	d.mu.RLock()
	ls := d.listeners[ev.Kind]
	d.mu.RUnlock()
	for _, l := range ls {
		if err := l(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}
