package sqlstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.JobPartRepository = (*JobPartRepo)(nil)

// JobPartRepo persiste líneas de repuestos de un trabajo.
type JobPartRepo struct {
	conn
}

// NewJobPartRepository construye el repositorio. Pasar pool o tx (Querier).
func NewJobPartRepository(q Querier, d Dialect) *JobPartRepo {
	return &JobPartRepo{conn{q: q, d: d}}
}

// Create inserta la línea con su precio y costo congelados.
func (r *JobPartRepo) Create(ctx context.Context, p *entity.JobPart) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = nowUTC()
	}
	id, err := r.insertReturningID(ctx, `
		INSERT INTO job_parts (job_id, part_id, qty, price_at_sale, cost_at_sale, created_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		p.JobID, p.PartID, p.Quantity, p.PriceAtSale, p.CostAtSale, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job part: %w", err)
	}
	p.ID = id
	return nil
}

// ListByJob lista las líneas del trabajo con número y nombre de la parte.
func (r *JobPartRepo) ListByJob(ctx context.Context, jobID int64) ([]*entity.JobPartLine, error) {
	rows, err := r.query(ctx, `
		SELECT jp.id, jp.job_id, jp.part_id, jp.qty, jp.price_at_sale, jp.cost_at_sale, jp.created_at,
			i.part_number, i.part_name
		FROM job_parts jp
		JOIN inventory i ON i.part_id = jp.part_id
		WHERE jp.job_id = ?
		ORDER BY jp.id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobPartLine
	for rows.Next() {
		var l entity.JobPartLine
		if err := rows.Scan(&l.ID, &l.JobID, &l.PartID, &l.Quantity, &l.PriceAtSale, &l.CostAtSale, &l.CreatedAt,
			&l.PartNumber, &l.PartName); err != nil {
			return nil, fmt.Errorf("scan job part: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
