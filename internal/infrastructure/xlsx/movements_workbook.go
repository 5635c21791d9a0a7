// Package xlsx exporta los movimientos de stock a una planilla Excel.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tealeg/xlsx/v3"

	"github.com/jhoicas/Estoque-api/internal/application/reports"
)

const (
	SheetEntries = "Entradas"
	SheetExits   = "Salidas"

	dateLayout = "02/01/2006"
)

var (
	entryHeaders = []string{"Fecha", "Producto", "Proveedor", "Cantidad", "Costo unitario", "Valor total", "Nota"}
	exitHeaders  = []string{"Fecha", "Producto", "Cantidad", "Motivo", "Cliente", "Nota"}
)

// MovementsWorkbook implementa reports.MovementsWorkbookGenerator con tealeg/xlsx.
type MovementsWorkbook struct{}

var _ reports.MovementsWorkbookGenerator = (*MovementsWorkbook)(nil)

// NewMovementsWorkbook construye el generador.
func NewMovementsWorkbook() *MovementsWorkbook { return &MovementsWorkbook{} }

// GenerateMovementsWorkbook arma un libro con una hoja de entradas y otra de salidas.
func (g *MovementsWorkbook) GenerateMovementsWorkbook(_ context.Context, report reports.MovementsReport) ([]byte, error) {
	file := xlsx.NewFile()

	entries, err := file.AddSheet(SheetEntries)
	if err != nil {
		return nil, fmt.Errorf("xlsx: hoja de entradas: %w", err)
	}
	addHeader(entries, entryHeaders)
	for _, e := range report.Entries {
		r := entries.AddRow()
		r.AddCell().SetString(e.MovementDate.Format(dateLayout))
		r.AddCell().SetString(e.ProductName)
		r.AddCell().SetString(e.SupplierName)
		r.AddCell().SetInt(e.Quantity)
		if e.UnitCost != nil {
			r.AddCell().SetFloat(e.UnitCost.InexactFloat64())
		} else {
			r.AddCell().SetString("")
		}
		r.AddCell().SetFloat(e.TotalValue().InexactFloat64())
		r.AddCell().SetString(e.Note)
	}

	exits, err := file.AddSheet(SheetExits)
	if err != nil {
		return nil, fmt.Errorf("xlsx: hoja de salidas: %w", err)
	}
	addHeader(exits, exitHeaders)
	for _, x := range report.Exits {
		r := exits.AddRow()
		r.AddCell().SetString(x.MovementDate.Format(dateLayout))
		r.AddCell().SetString(x.ProductName)
		r.AddCell().SetInt(x.Quantity)
		r.AddCell().SetString(x.Reason)
		r.AddCell().SetString(x.Customer)
		r.AddCell().SetString(x.Note)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func addHeader(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, h := range headers {
		cell := row.AddCell()
		cell.Value = h
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}
	sheet.SetColWidth(1, len(headers), 18)
}
