package xlsx_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tealeg "github.com/tealeg/xlsx/v3"

	"github.com/jhoicas/Estoque-api/internal/application/reports"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/xlsx"
)

func cellValue(t *testing.T, sheet *tealeg.Sheet, row, col int) string {
	t.Helper()
	c, err := sheet.Cell(row, col)
	require.NoError(t, err)
	return c.Value
}

func TestMovementsWorkbook_DosHojas(t *testing.T) {
	cost := decimal.RequireFromString("2.5")
	date := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	report := reports.MovementsReport{
		Entries: []*entity.Entry{{
			MovementBase: entity.MovementBase{ID: "e1", ProductID: "p1", ProductName: "Arroz", Quantity: 4, MovementDate: date},
			SupplierID:   "s1", SupplierName: "Atacado", UnitCost: &cost,
		}},
		Exits: []*entity.Exit{{
			MovementBase: entity.MovementBase{ID: "x1", ProductID: "p1", ProductName: "Arroz", Quantity: 1, MovementDate: date},
			Reason:       "venta",
		}},
	}

	out, err := xlsx.NewMovementsWorkbook().GenerateMovementsWorkbook(context.Background(), report)
	require.NoError(t, err)

	file, err := tealeg.OpenBinary(out)
	require.NoError(t, err)

	entries, ok := file.Sheet[xlsx.SheetEntries]
	require.True(t, ok)
	assert.Equal(t, 2, entries.MaxRow)
	assert.Equal(t, "Fecha", cellValue(t, entries, 0, 0))
	assert.Equal(t, "02/03/2026", cellValue(t, entries, 1, 0))
	assert.Equal(t, "Atacado", cellValue(t, entries, 1, 2))
	assert.Equal(t, "4", cellValue(t, entries, 1, 3))
	assert.Equal(t, "10", cellValue(t, entries, 1, 5))

	exits, ok := file.Sheet[xlsx.SheetExits]
	require.True(t, ok)
	assert.Equal(t, 2, exits.MaxRow)
	assert.Equal(t, "venta", cellValue(t, exits, 1, 3))
}

func TestMovementsWorkbook_SinMovimientos_SoloCabeceras(t *testing.T) {
	out, err := xlsx.NewMovementsWorkbook().GenerateMovementsWorkbook(context.Background(), reports.MovementsReport{})
	require.NoError(t, err)

	file, err := tealeg.OpenBinary(out)
	require.NoError(t, err)
	assert.Equal(t, 1, file.Sheet[xlsx.SheetEntries].MaxRow)
	assert.Equal(t, 1, file.Sheet[xlsx.SheetExits].MaxRow)
}
