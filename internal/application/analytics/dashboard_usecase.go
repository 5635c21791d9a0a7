// Package analytics contiene los casos de uso de lectura para el dashboard de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // productos en el widget de ranking

// DashboardUseCase genera el resumen del inventario y de los movimientos del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo     repository.AnalyticsRepository
	lowStockThreshold int
	clock             inventory.Clock
}

// NewDashboardUseCase construye el caso de uso. clock nil = reloj del sistema.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, lowStockThreshold int, clock inventory.Clock) *DashboardUseCase {
	if clock == nil {
		clock = inventory.SystemClock{}
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, lowStockThreshold: lowStockThreshold, clock: clock}
}

// GetOverview construye el DashboardOverviewDTO.
//
// Seis consultas en paralelo:
//  1. CountProducts
//  2. TotalStockValue
//  3. CountLowStock(umbral)
//  4. CountEntriesSince(día 1 del mes)
//  5. CountExitsSince(día 1 del mes)
//  6. TopStocked(5)
func (uc *DashboardUseCase) GetOverview(ctx context.Context) (*dto.DashboardOverviewDTO, error) {
	now := uc.clock.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type countResult struct {
		n   int
		err error
	}
	type valueResult struct {
		v   decimal.Decimal
		err error
	}
	type topResult struct {
		items []repository.StockedProduct
		err   error
	}

	productsCh := make(chan countResult, 1)
	valueCh := make(chan valueResult, 1)
	lowCh := make(chan countResult, 1)
	entriesCh := make(chan countResult, 1)
	exitsCh := make(chan countResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.TotalStockValue(ctx)
		valueCh <- valueResult{v, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountLowStock(ctx, uc.lowStockThreshold)
		lowCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountEntriesSince(ctx, monthStart)
		entriesCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountExitsSince(ctx, monthStart)
		exitsCh <- countResult{n, err}
	}()
	go func() {
		items, err := uc.analyticsRepo.TopStocked(ctx, dashboardTopProducts)
		topCh <- topResult{items, err}
	}()

	products := <-productsCh
	value := <-valueCh
	low := <-lowCh
	entries := <-entriesCh
	exits := <-exitsCh
	top := <-topCh

	switch {
	case products.err != nil:
		return nil, fmt.Errorf("dashboard: total de productos: %w", products.err)
	case value.err != nil:
		return nil, fmt.Errorf("dashboard: valor del stock: %w", value.err)
	case low.err != nil:
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	case entries.err != nil:
		return nil, fmt.Errorf("dashboard: entradas del mes: %w", entries.err)
	case exits.err != nil:
		return nil, fmt.Errorf("dashboard: salidas del mes: %w", exits.err)
	case top.err != nil:
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}

	topProducts := make([]dto.TopProductDTO, 0, len(top.items))
	for _, p := range top.items {
		topProducts = append(topProducts, dto.TopProductDTO{ProductID: p.ProductID, Name: p.Name, Quantity: p.Quantity})
	}

	return &dto.DashboardOverviewDTO{
		TotalProducts:   products.n,
		TotalStockValue: value.v.Round(2),
		LowStockItems:   low.n,
		MonthlyEntries:  entries.n,
		MonthlyExits:    exits.n,
		TopProducts:     topProducts,
		DateLabel:       MonthLabel(now),
	}, nil
}

// MonthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func MonthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
