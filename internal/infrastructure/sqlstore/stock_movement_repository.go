package sqlstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo persiste el historial del libro de inventario.
type StockMovementRepo struct {
	conn
}

// NewStockMovementRepository construye el repositorio de movimientos. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier, d Dialect) *StockMovementRepo {
	return &StockMovementRepo{conn{q: q, d: d}}
}

// Create inserta un movimiento. CreatedAt se fija si viene vacío.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = nowUTC()
	}
	id, err := r.insertReturningID(ctx, `
		INSERT INTO stock_movements (transaction_id, part_id, movement_type, quantity, unit_cost,
			avg_cost_after, quantity_after, reference, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING movement_id`,
		m.TransactionID, m.PartID, m.Type, m.Quantity, m.UnitCost,
		m.AvgCostAfter, m.QuantityAfter, nullString(m.Reference), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	m.ID = id
	return nil
}

// ListByPart lista los movimientos de una parte, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByPart(ctx context.Context, partID int64, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.query(ctx, `
		SELECT movement_id, transaction_id, part_id, movement_type, quantity, unit_cost,
			avg_cost_after, quantity_after, COALESCE(reference, ''), created_at
		FROM stock_movements WHERE part_id = ?
		ORDER BY movement_id DESC LIMIT ? OFFSET ?`, partID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.PartID, &m.Type, &m.Quantity, &m.UnitCost,
			&m.AvgCostAfter, &m.QuantityAfter, &m.Reference, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
