// Package analytics contiene el tablero del taller: trabajos, facturación e inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/job"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

const dashboardTopParts = 5 // repuestos en el widget del tablero

// DashboardUseCase genera el resumen del día y del mes en curso.
// No accede a las tablas directamente; delega todo en AnalyticsRepository.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco consultas en paralelo:
//  1. JobCountsByStatus      → JobsByStatus + ActiveJobs
//  2. CompletedJobs(hoy)     → TodayCompleted + TodayRevenue
//  3. CompletedJobs(mes)     → MonthCompleted + MonthRevenue + MonthMargin
//  4. TopParts(mes, top 5)   → TopParts
//  5. InventoryTotals        → Inventory
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type countsResult struct {
		counts []repository.JobStatusCount
		err    error
	}
	type metricsResult struct {
		m   repository.CompletedJobsMetrics
		err error
	}
	type partsResult struct {
		parts []repository.TopPartResult
		err   error
	}
	type inventoryResult struct {
		t   repository.InventoryTotals
		err error
	}

	countsCh := make(chan countsResult, 1)
	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	partsCh := make(chan partsResult, 1)
	invCh := make(chan inventoryResult, 1)

	go func() {
		c, err := uc.analyticsRepo.JobCountsByStatus(ctx)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.CompletedJobs(ctx, todayStart, todayEnd)
		todayCh <- metricsResult{m, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.CompletedJobs(ctx, monthStart, todayEnd)
		monthCh <- metricsResult{m, err}
	}()
	go func() {
		p, err := uc.analyticsRepo.TopParts(ctx, monthStart, todayEnd, dashboardTopParts)
		partsCh <- partsResult{p, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.InventoryTotals(ctx)
		invCh <- inventoryResult{t, err}
	}()

	counts, today, month, parts, inv := <-countsCh, <-todayCh, <-monthCh, <-partsCh, <-invCh
	for _, e := range []struct {
		op  string
		err error
	}{
		{"trabajos por estado", counts.err},
		{"métricas de hoy", today.err},
		{"métricas del mes", month.err},
		{"top repuestos", parts.err},
		{"inventario", inv.err},
	} {
		if e.err != nil {
			return nil, domain.Storage("dashboard: "+e.op, e.err)
		}
	}

	out := &dto.DashboardSummaryDTO{
		JobsByStatus:   make(map[string]int, len(job.Statuses())),
		TodayCompleted: today.m.Jobs,
		TodayRevenue:   today.m.Revenue.Round(2),
		MonthCompleted: month.m.Jobs,
		MonthRevenue:   month.m.Revenue.Round(2),
		MonthMargin:    month.m.Revenue.Sub(month.m.PartsCost).Round(2),
		Inventory: dto.InventorySummaryDTO{
			Parts:    inv.t.Parts,
			Units:    inv.t.Units,
			Value:    inv.t.Value.Round(2),
			LowStock: inv.t.LowStock,
		},
		TopParts:  make([]dto.TopPartDTO, 0, len(parts.parts)),
		DateLabel: monthLabel(now),
	}
	for _, s := range job.Statuses() {
		out.JobsByStatus[s] = 0
	}
	for _, c := range counts.counts {
		out.JobsByStatus[c.Status] = c.Count
		if c.Status != entity.JobStatusCompleted {
			out.ActiveJobs += c.Count
		}
	}
	for _, p := range parts.parts {
		out.TopParts = append(out.TopParts, dto.TopPartDTO{
			PartID:           p.PartID,
			PartNumber:       p.PartNumber,
			PartName:         p.PartName,
			QuantitySold:     p.Quantity,
			TotalRevenue:     p.Revenue.Round(2),
			MarginPercentage: marginPercentage(p.Revenue, p.Cost),
		})
	}
	return out, nil
}

func marginPercentage(revenue, cost decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return revenue.Sub(cost).Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
