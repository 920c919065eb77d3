package sqlstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.LaborChargeRepository = (*LaborChargeRepo)(nil)

// LaborChargeRepo persiste entradas de mano de obra.
type LaborChargeRepo struct {
	conn
}

// NewLaborChargeRepository construye el repositorio. Pasar pool o tx (Querier).
func NewLaborChargeRepository(q Querier, d Dialect) *LaborChargeRepo {
	return &LaborChargeRepo{conn{q: q, d: d}}
}

// Create inserta una entrada de mano de obra.
func (r *LaborChargeRepo) Create(ctx context.Context, c *entity.LaborCharge) error {
	if c.RecordedAt.IsZero() {
		c.RecordedAt = nowUTC()
	}
	id, err := r.insertReturningID(ctx, `
		INSERT INTO labor_charges (job_id, technician_id, hours_worked, hourly_rate, total_labor_cost, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING labor_id`,
		c.JobID, c.TechnicianID, c.HoursWorked, c.HourlyRate, c.TotalLaborCost, c.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert labor charge: %w", err)
	}
	c.ID = id
	return nil
}

// ListByJob lista las entradas de mano de obra de un trabajo en orden de registro.
func (r *LaborChargeRepo) ListByJob(ctx context.Context, jobID int64) ([]*entity.LaborCharge, error) {
	rows, err := r.query(ctx, `
		SELECT labor_id, job_id, technician_id, hours_worked, hourly_rate, total_labor_cost, recorded_at
		FROM labor_charges WHERE job_id = ? ORDER BY recorded_at, labor_id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list labor charges: %w", err)
	}
	defer rows.Close()
	var list []*entity.LaborCharge
	for rows.Next() {
		var c entity.LaborCharge
		if err := rows.Scan(&c.ID, &c.JobID, &c.TechnicianID, &c.HoursWorked, &c.HourlyRate,
			&c.TotalLaborCost, &c.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan labor charge: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
