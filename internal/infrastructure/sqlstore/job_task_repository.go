package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.JobTaskRepository = (*JobTaskRepo)(nil)

// JobTaskRepo persiste la lista de chequeo de los trabajos.
type JobTaskRepo struct {
	conn
}

// NewJobTaskRepository construye el repositorio. Pasar pool o tx (Querier).
func NewJobTaskRepository(q Querier, d Dialect) *JobTaskRepo {
	return &JobTaskRepo{conn{q: q, d: d}}
}

// Create inserta una tarea.
func (r *JobTaskRepo) Create(ctx context.Context, t *entity.JobTask) error {
	id, err := r.insertReturningID(ctx,
		`INSERT INTO job_tasks (job_id, description, is_completed) VALUES (?, ?, ?) RETURNING task_id`,
		t.JobID, t.Description, t.IsCompleted,
	)
	if err != nil {
		return fmt.Errorf("insert job task: %w", err)
	}
	t.ID = id
	return nil
}

// GetByID obtiene una tarea por ID.
func (r *JobTaskRepo) GetByID(ctx context.Context, id int64) (*entity.JobTask, error) {
	var t entity.JobTask
	err := r.queryRow(ctx,
		`SELECT task_id, job_id, COALESCE(description, ''), is_completed FROM job_tasks WHERE task_id = ?`, id).
		Scan(&t.ID, &t.JobID, &t.Description, &t.IsCompleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job task: %w", err)
	}
	return &t, nil
}

// SetCompleted marca o desmarca una tarea.
func (r *JobTaskRepo) SetCompleted(ctx context.Context, id int64, completed bool) error {
	res, err := r.exec(ctx, `UPDATE job_tasks SET is_completed = ? WHERE task_id = ?`, completed, id)
	if err != nil {
		return fmt.Errorf("update job task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("tarea %d", id)
	}
	return nil
}

// Delete elimina una tarea.
func (r *JobTaskRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.exec(ctx, `DELETE FROM job_tasks WHERE task_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete job task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("tarea %d", id)
	}
	return nil
}

// ListByJob lista las tareas de un trabajo en orden de creación.
func (r *JobTaskRepo) ListByJob(ctx context.Context, jobID int64) ([]*entity.JobTask, error) {
	rows, err := r.query(ctx, `
		SELECT task_id, job_id, COALESCE(description, ''), is_completed
		FROM job_tasks WHERE job_id = ? ORDER BY task_id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobTask
	for rows.Next() {
		var t entity.JobTask
		if err := rows.Scan(&t.ID, &t.JobID, &t.Description, &t.IsCompleted); err != nil {
			return nil, fmt.Errorf("scan job task: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
