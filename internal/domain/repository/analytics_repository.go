package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// JobStatusCount cantidad de trabajos en un estado.
type JobStatusCount struct {
	Status string
	Count  int
}

// CompletedJobsMetrics agregados de los trabajos completados en un período.
type CompletedJobsMetrics struct {
	Jobs      int
	Revenue   decimal.Decimal // Σ total_price
	PartsCost decimal.Decimal // Σ cost_at_sale * qty de sus repuestos
}

// TopPartResult repuesto con su consumo en trabajos dentro de un período.
type TopPartResult struct {
	PartID     int64
	PartNumber string
	PartName   string
	Quantity   int
	Revenue    decimal.Decimal // Σ price_at_sale * qty
	Cost       decimal.Decimal // Σ cost_at_sale * qty
}

// InventoryTotals resumen del inventario al momento de la consulta.
type InventoryTotals struct {
	Parts    int
	Units    int
	Value    decimal.Decimal // Σ total_quantity * avg_cost
	LowStock int             // partes con total_quantity <= min_threshold
}

// AnalyticsRepository consultas read-only para el tablero del taller.
type AnalyticsRepository interface {
	JobCountsByStatus(ctx context.Context) ([]JobStatusCount, error)
	// CompletedJobs agrega los trabajos con completion_date en [start, end].
	CompletedJobs(ctx context.Context, start, end time.Time) (CompletedJobsMetrics, error)
	// TopParts devuelve los repuestos con mayor ingreso agregados a trabajos en [start, end].
	TopParts(ctx context.Context, start, end time.Time, limit int) ([]TopPartResult, error)
	InventoryTotals(ctx context.Context) (InventoryTotals, error)
}
