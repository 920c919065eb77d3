package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementa las consultas del tablero. Solo lectura.
type AnalyticsRepo struct {
	conn
}

// NewAnalyticsRepository construye el repositorio.
func NewAnalyticsRepository(q Querier, d Dialect) *AnalyticsRepo {
	return &AnalyticsRepo{conn{q: q, d: d}}
}

// JobCountsByStatus cuenta trabajos agrupados por estado.
func (r *AnalyticsRepo) JobCountsByStatus(ctx context.Context) ([]repository.JobStatusCount, error) {
	rows, err := r.query(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("count jobs by status: %w", err)
	}
	defer rows.Close()
	var out []repository.JobStatusCount
	for rows.Next() {
		var c repository.JobStatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan job count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CompletedJobs agrega ingresos y costo de repuestos de los trabajos completados en el rango.
func (r *AnalyticsRepo) CompletedJobs(ctx context.Context, start, end time.Time) (repository.CompletedJobsMetrics, error) {
	var m repository.CompletedJobsMetrics
	err := r.queryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(j.total_price), 0), COALESCE(SUM(pc.cost), 0)
		FROM jobs j
		LEFT JOIN (
			SELECT job_id, SUM(cost_at_sale * qty) AS cost FROM job_parts GROUP BY job_id
		) pc ON pc.job_id = j.job_id
		WHERE j.status = 'completed' AND j.completion_date >= ? AND j.completion_date <= ?`,
		start.UTC(), end.UTC(),
	).Scan(&m.Jobs, &m.Revenue, &m.PartsCost)
	if err != nil {
		return m, fmt.Errorf("completed jobs metrics: %w", err)
	}
	return m, nil
}

// TopParts ordena los repuestos por ingreso descendente.
func (r *AnalyticsRepo) TopParts(ctx context.Context, start, end time.Time, limit int) ([]repository.TopPartResult, error) {
	rows, err := r.query(ctx, `
		SELECT i.part_id, i.part_number, i.part_name,
			SUM(jp.qty), SUM(jp.price_at_sale * jp.qty), SUM(jp.cost_at_sale * jp.qty)
		FROM job_parts jp
		JOIN inventory i ON i.part_id = jp.part_id
		WHERE jp.created_at >= ? AND jp.created_at <= ?
		GROUP BY i.part_id, i.part_number, i.part_name
		ORDER BY SUM(jp.price_at_sale * jp.qty) DESC, i.part_id
		LIMIT ?`,
		start.UTC(), end.UTC(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top parts: %w", err)
	}
	defer rows.Close()
	var out []repository.TopPartResult
	for rows.Next() {
		var p repository.TopPartResult
		if err := rows.Scan(&p.PartID, &p.PartNumber, &p.PartName, &p.Quantity, &p.Revenue, &p.Cost); err != nil {
			return nil, fmt.Errorf("scan top part: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// InventoryTotals resume partes, unidades, valor a costo promedio y partes bajo el mínimo.
func (r *AnalyticsRepo) InventoryTotals(ctx context.Context) (repository.InventoryTotals, error) {
	var t repository.InventoryTotals
	err := r.queryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_quantity), 0), COALESCE(SUM(total_quantity * avg_cost), 0),
			COALESCE(SUM(CASE WHEN total_quantity <= min_threshold THEN 1 ELSE 0 END), 0)
		FROM inventory`,
	).Scan(&t.Parts, &t.Units, &t.Value, &t.LowStock)
	if err != nil {
		return t, fmt.Errorf("inventory totals: %w", err)
	}
	return t, nil
}
