// Package reports arma los datos de los reportes descargables (stock en PDF y movimientos en
// planilla) y delega el formato en generadores de infraestructura.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// StockReport snapshot del inventario para el PDF.
type StockReport struct {
	Title       string
	GeneratedAt time.Time
	Products    []*entity.Product
	TotalUnits  int
	TotalValue  decimal.Decimal
}

// MovementsReport entradas y salidas de un período.
type MovementsReport struct {
	From    time.Time
	To      time.Time
	Entries []*entity.Entry
	Exits   []*entity.Exit
}

// StockReportGenerator produce el PDF del stock.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, report StockReport) ([]byte, error)
}

// MovementsWorkbookGenerator produce la planilla de movimientos.
type MovementsWorkbookGenerator interface {
	GenerateMovementsWorkbook(ctx context.Context, report MovementsReport) ([]byte, error)
}

// ReportUseCase casos de uso de reportes.
type ReportUseCase struct {
	products repository.ProductRepository
	entries  repository.EntryRepository
	exits    repository.ExitRepository
	pdf      StockReportGenerator
	xlsx     MovementsWorkbookGenerator
	clock    inventory.Clock
}

// NewReportUseCase construye el caso de uso. clock nil = reloj del sistema.
func NewReportUseCase(
	products repository.ProductRepository,
	entries repository.EntryRepository,
	exits repository.ExitRepository,
	pdf StockReportGenerator,
	xlsx MovementsWorkbookGenerator,
	clock inventory.Clock,
) *ReportUseCase {
	if clock == nil {
		clock = inventory.SystemClock{}
	}
	return &ReportUseCase{products: products, entries: entries, exits: exits, pdf: pdf, xlsx: xlsx, clock: clock}
}

// StockPDF genera el reporte de stock de todos los productos.
func (uc *ReportUseCase) StockPDF(ctx context.Context) ([]byte, error) {
	products, _, err := uc.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("reporte de stock: %w", err)
	}
	report := StockReport{
		Title:       "Reporte de stock",
		GeneratedAt: uc.clock.Now(),
		Products:    products,
		TotalValue:  decimal.Zero,
	}
	for _, p := range products {
		report.TotalUnits += p.StockQuantity
		report.TotalValue = report.TotalValue.Add(p.StockValue())
	}
	return uc.pdf.GenerateStockReport(ctx, report)
}

// MovementsXLSX genera la planilla de movimientos entre from y to (YYYY-MM-DD, inclusive).
// Sin fechas usa el mes en curso hasta hoy.
func (uc *ReportUseCase) MovementsXLSX(ctx context.Context, from, to string) ([]byte, error) {
	now := uc.clock.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var err error
	if from != "" {
		if start, err = time.Parse(dto.DateLayout, from); err != nil {
			return nil, fmt.Errorf("%w: from debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	if to != "" {
		if end, err = time.Parse(dto.DateLayout, to); err != nil {
			return nil, fmt.Errorf("%w: to debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: to anterior a from", domain.ErrInvalidInput)
	}

	filter := repository.MovementFilter{From: &start, To: &end}
	entries, _, err := uc.entries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reporte de movimientos: entradas: %w", err)
	}
	exits, _, err := uc.exits.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reporte de movimientos: salidas: %w", err)
	}
	return uc.xlsx.GenerateMovementsWorkbook(ctx, MovementsReport{From: start, To: end, Entries: entries, Exits: exits})
}
