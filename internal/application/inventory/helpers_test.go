package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var (
	testNow   = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	testClock = inventory.ClockFunc(func() time.Time { return testNow })
)

const (
	yesterday = "2026-03-14"
	todayStr  = "2026-03-15"
	tomorrow  = "2026-03-16"
)

type fixture struct {
	store   *memory.Store
	entries *appinv.EntryUseCase
	exits   *appinv.ExitUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	events := appinv.NewStockDispatcher(nil)
	return &fixture{
		store:   store,
		entries: appinv.NewEntryUseCase(store, store.Entries(), events, testClock),
		exits:   appinv.NewExitUseCase(store, store.Exits(), events, testClock),
	}
}

func (f *fixture) addProduct(t *testing.T, id string, stock int) {
	t.Helper()
	require.NoError(t, f.store.Products().Create(context.Background(), &entity.Product{
		ID:            id,
		Name:          "Producto " + id,
		Price:         decimal.NewFromInt(10),
		StockQuantity: stock,
		UnitMeasure:   "UN",
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	}))
}

func (f *fixture) addSupplier(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.store.Suppliers().Create(context.Background(), &entity.Supplier{
		ID:   id,
		Name: "Proveedor " + id,
	}))
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p, "producto %s debe existir", id)
	return p.StockQuantity
}

func qty(n int) *int { return &n }
