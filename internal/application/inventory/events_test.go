package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

func TestDispatcher_EjecutaEnOrdenYSincrono(t *testing.T) {
	d := appinv.NewDispatcher()
	var calls []string
	d.Subscribe(func(context.Context, appinv.StockEvent) error {
		calls = append(calls, "primero")
		return nil
	}, appinv.EventStockApplied)
	d.Subscribe(func(context.Context, appinv.StockEvent) error {
		calls = append(calls, "segundo")
		return nil
	}, appinv.EventStockApplied, appinv.EventStockReversed)

	require.NoError(t, d.Publish(context.Background(), appinv.StockEvent{Kind: appinv.EventStockApplied}))
	assert.Equal(t, []string{"primero", "segundo"}, calls)

	calls = nil
	require.NoError(t, d.Publish(context.Background(), appinv.StockEvent{Kind: appinv.EventStockReversed}))
	assert.Equal(t, []string{"segundo"}, calls)
}

func TestDispatcher_DetieneEnPrimerError(t *testing.T) {
	d := appinv.NewDispatcher()
	boom := errors.New("falla")
	called := false
	d.Subscribe(func(context.Context, appinv.StockEvent) error { return boom }, appinv.EventStockApplied)
	d.Subscribe(func(context.Context, appinv.StockEvent) error {
		called = true
		return nil
	}, appinv.EventStockApplied)

	err := d.Publish(context.Background(), appinv.StockEvent{Kind: appinv.EventStockApplied})

	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestStockListener_AplicaYRevierte(t *testing.T) {
	p := &entity.Product{ID: "p1", StockQuantity: 10}
	exit := &entity.Exit{MovementBase: entity.MovementBase{ID: "x1", ProductID: "p1", Quantity: 4}}
	ledger := inventory.NewLedger()
	ctx := context.Background()

	require.NoError(t, appinv.StockListener(ctx, appinv.StockEvent{Kind: appinv.EventStockApplied, Movement: exit, Product: p, Ledger: ledger}))
	assert.Equal(t, 6, p.StockQuantity)

	require.NoError(t, appinv.StockListener(ctx, appinv.StockEvent{Kind: appinv.EventStockReversed, Movement: exit, Product: p, Ledger: ledger}))
	assert.Equal(t, 10, p.StockQuantity)
	assert.Len(t, ledger.Touched(), 1)
}

func TestStockListener_EventoIncompleto(t *testing.T) {
	err := appinv.StockListener(context.Background(), appinv.StockEvent{Kind: appinv.EventStockApplied})
	assert.Error(t, err)
}

func TestNewStockDispatcher_ConAuditoria(t *testing.T) {
	d := appinv.NewStockDispatcher(logger.New(logger.Config{Env: "test", Level: "error"}))
	p := &entity.Product{ID: "p1", StockQuantity: 1}
	entry := &entity.Entry{MovementBase: entity.MovementBase{ID: "e1", ProductID: "p1", Quantity: 2}}

	err := d.Publish(context.Background(), appinv.StockEvent{
		Kind:     appinv.EventStockApplied,
		Movement: entry,
		Product:  p,
		Ledger:   inventory.NewLedger(),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, p.StockQuantity)
}
