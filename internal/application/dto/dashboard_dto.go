package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Trabajos por estado, facturación del día y del mes, inventario y top de repuestos del mes.
type DashboardSummaryDTO struct {
	JobsByStatus map[string]int `json:"jobs_by_status"`
	ActiveJobs   int            `json:"active_jobs"`

	// Trabajos completados hoy (00:00 – 23:59)
	TodayCompleted int             `json:"today_completed"`
	TodayRevenue   decimal.Decimal `json:"today_revenue"`

	// Trabajos completados en el mes en curso (día 1 – hoy)
	MonthCompleted int             `json:"month_completed"`
	MonthRevenue   decimal.Decimal `json:"month_revenue"`
	MonthMargin    decimal.Decimal `json:"month_margin"` // ingresos - costo de repuestos

	Inventory InventorySummaryDTO `json:"inventory"`
	TopParts  []TopPartDTO        `json:"top_parts"`

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// InventorySummaryDTO totales del inventario.
type InventorySummaryDTO struct {
	Parts    int             `json:"parts"`
	Units    int             `json:"units"`
	Value    decimal.Decimal `json:"value"`
	LowStock int             `json:"low_stock"`
}

// TopPartDTO repuesto con mayor ingreso del mes.
type TopPartDTO struct {
	PartID           int64           `json:"part_id"`
	PartNumber       string          `json:"part_number"`
	PartName         string          `json:"part_name"`
	QuantitySold     int             `json:"quantity_sold"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	MarginPercentage decimal.Decimal `json:"margin_percentage"` // (revenue - cost) / revenue * 100
}
