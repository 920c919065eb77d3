package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

const partColumns = `part_id, part_number, part_name, total_quantity, avg_cost, retail_price,
	min_threshold, COALESCE(category, ''), COALESCE(condition, ''), COALESCE(photo_path, '')`

// PartRepo implementación del puerto PartRepository (usable con pool o tx).
type PartRepo struct {
	conn
}

// NewPartRepository construye el adaptador de persistencia para repuestos. Pasar pool o tx (Querier).
func NewPartRepository(q Querier, d Dialect) *PartRepo {
	return &PartRepo{conn{q: q, d: d}}
}

// Create persiste una nueva parte y asigna su ID.
func (r *PartRepo) Create(ctx context.Context, p *entity.Part) error {
	id, err := r.insertReturningID(ctx, `
		INSERT INTO inventory (part_number, part_name, total_quantity, avg_cost, retail_price,
			min_threshold, category, condition, photo_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING part_id`,
		p.PartNumber, p.Name, p.Quantity, p.AvgCost, p.RetailPrice,
		p.MinThreshold, p.Category, p.Condition, nullString(p.PhotoPath),
	)
	if err != nil {
		if r.d.IsUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	p.ID = id
	return nil
}

// CreateIfAbsent inserta con ON CONFLICT DO NOTHING. En Postgres una inserción concurrente del
// mismo número espera al commit de la otra y no aborta la transacción.
func (r *PartRepo) CreateIfAbsent(ctx context.Context, p *entity.Part) (bool, error) {
	id, err := r.insertReturningID(ctx, `
		INSERT INTO inventory (part_number, part_name, total_quantity, avg_cost, retail_price,
			min_threshold, category, condition, photo_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (part_number) DO NOTHING RETURNING part_id`,
		p.PartNumber, p.Name, p.Quantity, p.AvgCost, p.RetailPrice,
		p.MinThreshold, p.Category, p.Condition, nullString(p.PhotoPath),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("insert part if absent: %w", err)
	}
	p.ID = id
	return true, nil
}

func (r *PartRepo) getOne(ctx context.Context, query string, arg any) (*entity.Part, error) {
	p, err := scanPart(r.queryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// GetByID obtiene una parte por ID.
func (r *PartRepo) GetByID(ctx context.Context, id int64) (*entity.Part, error) {
	p, err := r.getOne(ctx, `SELECT `+partColumns+` FROM inventory WHERE part_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// GetByNumber obtiene una parte por su número de parte.
func (r *PartRepo) GetByNumber(ctx context.Context, partNumber string) (*entity.Part, error) {
	p, err := r.getOne(ctx, `SELECT `+partColumns+` FROM inventory WHERE part_number = ?`, partNumber)
	if err != nil {
		return nil, fmt.Errorf("get part by number: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene la parte bloqueando la fila (solo dentro de una transacción).
func (r *PartRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Part, error) {
	p, err := r.getOne(ctx, r.forUpdate(`SELECT `+partColumns+` FROM inventory WHERE part_id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("get part for update: %w", err)
	}
	return p, nil
}

// GetByNumberForUpdate obtiene la parte por número bloqueando la fila.
func (r *PartRepo) GetByNumberForUpdate(ctx context.Context, partNumber string) (*entity.Part, error) {
	p, err := r.getOne(ctx, r.forUpdate(`SELECT `+partColumns+` FROM inventory WHERE part_number = ?`), partNumber)
	if err != nil {
		return nil, fmt.Errorf("get part by number for update: %w", err)
	}
	return p, nil
}

// UpdateStock escribe cantidad y costo promedio (usado por el libro de inventario).
func (r *PartRepo) UpdateStock(ctx context.Context, id int64, quantity int, avgCost decimal.Decimal) error {
	res, err := r.exec(ctx,
		`UPDATE inventory SET total_quantity = ?, avg_cost = ? WHERE part_id = ?`,
		quantity, avgCost, id,
	)
	if err != nil {
		return fmt.Errorf("update part stock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("parte %d", id)
	}
	return nil
}

// Update actualiza datos descriptivos. No modifica cantidad ni costo (se manejan vía el libro).
func (r *PartRepo) Update(ctx context.Context, p *entity.Part) error {
	res, err := r.exec(ctx, `
		UPDATE inventory SET part_name = ?, retail_price = ?, min_threshold = ?, category = ?,
			condition = ?, photo_path = ?
		WHERE part_id = ?`,
		p.Name, p.RetailPrice, p.MinThreshold, p.Category, p.Condition, nullString(p.PhotoPath), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("parte %d", p.ID)
	}
	return nil
}

// List lista partes por número de parte con paginación.
func (r *PartRepo) List(ctx context.Context, limit, offset int) ([]*entity.Part, error) {
	rows, err := r.query(ctx,
		`SELECT `+partColumns+` FROM inventory ORDER BY part_number LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return scanParts(rows)
}

// ListBelowThreshold lista las partes con cantidad en o por debajo de su umbral mínimo.
func (r *PartRepo) ListBelowThreshold(ctx context.Context) ([]*entity.Part, error) {
	rows, err := r.query(ctx,
		`SELECT `+partColumns+` FROM inventory WHERE total_quantity <= min_threshold ORDER BY part_number`)
	if err != nil {
		return nil, fmt.Errorf("list parts below threshold: %w", err)
	}
	return scanParts(rows)
}

// DistinctNames devuelve los nombres de parte distintos (sugerencias de autocompletado).
func (r *PartRepo) DistinctNames(ctx context.Context) ([]string, error) {
	rows, err := r.query(ctx,
		`SELECT DISTINCT part_name FROM inventory WHERE part_name IS NOT NULL AND part_name <> '' ORDER BY part_name`)
	if err != nil {
		return nil, fmt.Errorf("distinct part names: %w", err)
	}
	names, err := scanStrings(rows)
	if err != nil {
		return nil, fmt.Errorf("scan part names: %w", err)
	}
	return names, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPart(s rowScanner) (*entity.Part, error) {
	var p entity.Part
	if err := s.Scan(&p.ID, &p.PartNumber, &p.Name, &p.Quantity, &p.AvgCost, &p.RetailPrice,
		&p.MinThreshold, &p.Category, &p.Condition, &p.PhotoPath); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanParts(rows *sql.Rows) ([]*entity.Part, error) {
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
