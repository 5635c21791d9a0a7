package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/reports"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
)

type mockPDF struct{ mock.Mock }

func (m *mockPDF) GenerateStockReport(ctx context.Context, r reports.StockReport) ([]byte, error) {
	args := m.Called(ctx, r)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type mockXLSX struct{ mock.Mock }

func (m *mockXLSX) GenerateMovementsWorkbook(ctx context.Context, r reports.MovementsReport) ([]byte, error) {
	args := m.Called(ctx, r)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

var now = time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)

func day(d int) time.Time { return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC) }

func seed(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", Name: "Arroz", Price: decimal.RequireFromString("2.50"), StockQuantity: 10, UnitMeasure: "KG"}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p2", Name: "Feijão", Price: decimal.RequireFromString("4"), StockQuantity: 3, UnitMeasure: "KG"}))
	require.NoError(t, store.Suppliers().Create(ctx, &entity.Supplier{ID: "s1", Name: "Atacado"}))
	require.NoError(t, store.Entries().Create(ctx, &entity.Entry{MovementBase: entity.MovementBase{ID: "e1", ProductID: "p1", Quantity: 10, MovementDate: day(2)}, SupplierID: "s1"}))
	require.NoError(t, store.Entries().Create(ctx, &entity.Entry{MovementBase: entity.MovementBase{ID: "e2", ProductID: "p2", Quantity: 3, MovementDate: time.Date(2026, time.February, 27, 0, 0, 0, 0, time.UTC)}, SupplierID: "s1"}))
	require.NoError(t, store.Exits().Create(ctx, &entity.Exit{MovementBase: entity.MovementBase{ID: "x1", ProductID: "p1", Quantity: 1, MovementDate: day(10)}}))
	return store
}

func TestStockPDF_CalculaTotales(t *testing.T) {
	store := seed(t)
	pdf := new(mockPDF)
	pdf.On("GenerateStockReport", mock.Anything, mock.MatchedBy(func(r reports.StockReport) bool {
		return len(r.Products) == 2 && r.TotalUnits == 13 && r.TotalValue.Equal(decimal.RequireFromString("37")) && r.GeneratedAt.Equal(now)
	})).Return([]byte("%PDF"), nil)

	uc := reports.NewReportUseCase(store.Products(), store.Entries(), store.Exits(), pdf, new(mockXLSX), inventory.ClockFunc(func() time.Time { return now }))
	out, err := uc.StockPDF(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)
	pdf.AssertExpectations(t)
}

func TestMovementsXLSX_PorDefectoMesEnCurso(t *testing.T) {
	store := seed(t)
	xl := new(mockXLSX)
	xl.On("GenerateMovementsWorkbook", mock.Anything, mock.MatchedBy(func(r reports.MovementsReport) bool {
		return r.From.Equal(day(1)) && r.To.Equal(day(15)) && len(r.Entries) == 1 && r.Entries[0].ID == "e1" && len(r.Exits) == 1
	})).Return([]byte("PK"), nil)

	uc := reports.NewReportUseCase(store.Products(), store.Entries(), store.Exits(), new(mockPDF), xl, inventory.ClockFunc(func() time.Time { return now }))
	_, err := uc.MovementsXLSX(context.Background(), "", "")

	require.NoError(t, err)
	xl.AssertExpectations(t)
}

func TestMovementsXLSX_RangoExplicito(t *testing.T) {
	store := seed(t)
	xl := new(mockXLSX)
	xl.On("GenerateMovementsWorkbook", mock.Anything, mock.MatchedBy(func(r reports.MovementsReport) bool {
		return len(r.Entries) == 2 && len(r.Exits) == 0
	})).Return([]byte("PK"), nil)

	uc := reports.NewReportUseCase(store.Products(), store.Entries(), store.Exits(), new(mockPDF), xl, nil)
	_, err := uc.MovementsXLSX(context.Background(), "2026-02-01", "2026-03-05")

	require.NoError(t, err)
	xl.AssertExpectations(t)
}

func TestMovementsXLSX_FechasInvalidas(t *testing.T) {
	uc := reports.NewReportUseCase(nil, nil, nil, nil, nil, nil)

	_, err := uc.MovementsXLSX(context.Background(), "15/03/2026", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.MovementsXLSX(context.Background(), "2026-03-10", "2026-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
