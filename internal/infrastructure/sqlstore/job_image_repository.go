package sqlstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.JobImageRepository = (*JobImageRepo)(nil)

// JobImageRepo persiste referencias a fotos de trabajos.
type JobImageRepo struct {
	conn
}

// NewJobImageRepository construye el repositorio. Pasar pool o tx (Querier).
func NewJobImageRepository(q Querier, d Dialect) *JobImageRepo {
	return &JobImageRepo{conn{q: q, d: d}}
}

// Create inserta la referencia a una imagen.
func (r *JobImageRepo) Create(ctx context.Context, img *entity.JobImage) error {
	if img.CreatedAt.IsZero() {
		img.CreatedAt = nowUTC()
	}
	id, err := r.insertReturningID(ctx, `
		INSERT INTO job_images (job_id, image_path, caption, created_at)
		VALUES (?, ?, ?, ?) RETURNING image_id`,
		img.JobID, img.ImagePath, nullString(img.Caption), img.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job image: %w", err)
	}
	img.ID = id
	return nil
}

// ListByJob lista las imágenes de un trabajo.
func (r *JobImageRepo) ListByJob(ctx context.Context, jobID int64) ([]*entity.JobImage, error) {
	rows, err := r.query(ctx, `
		SELECT image_id, job_id, image_path, COALESCE(caption, ''), created_at
		FROM job_images WHERE job_id = ? ORDER BY created_at, image_id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job images: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobImage
	for rows.Next() {
		var img entity.JobImage
		if err := rows.Scan(&img.ID, &img.JobID, &img.ImagePath, &img.Caption, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan job image: %w", err)
		}
		list = append(list, &img)
	}
	return list, rows.Err()
}
