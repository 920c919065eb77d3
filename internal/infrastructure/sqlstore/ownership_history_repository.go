package sqlstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.OwnershipHistoryRepository = (*OwnershipHistoryRepo)(nil)

// OwnershipHistoryRepo persiste traspasos de propietario (solo inserción).
type OwnershipHistoryRepo struct {
	conn
}

// NewOwnershipHistoryRepository construye el repositorio. Pasar pool o tx (Querier).
func NewOwnershipHistoryRepository(q Querier, d Dialect) *OwnershipHistoryRepo {
	return &OwnershipHistoryRepo{conn{q: q, d: d}}
}

// Append inserta un traspaso. TransferDate se fija si viene vacío.
func (r *OwnershipHistoryRepo) Append(ctx context.Context, h *entity.OwnershipHistory) error {
	if h.TransferDate.IsZero() {
		h.TransferDate = nowUTC()
	}
	id, err := r.insertReturningID(ctx, `
		INSERT INTO ownership_history (vehicle_id, old_owner, new_owner, mileage_at_transfer, transfer_date)
		VALUES (?, ?, ?, ?, ?) RETURNING history_id`,
		h.VehicleID, nullString(h.OldOwner), h.NewOwner, h.MileageAtTransfer, h.TransferDate,
	)
	if err != nil {
		return fmt.Errorf("insert ownership history: %w", err)
	}
	h.ID = id
	return nil
}

// ListByVehicle lista los traspasos de un vehículo, del más reciente al más antiguo.
func (r *OwnershipHistoryRepo) ListByVehicle(ctx context.Context, vehicleID int64) ([]*entity.OwnershipHistory, error) {
	rows, err := r.query(ctx, `
		SELECT history_id, vehicle_id, COALESCE(old_owner, ''), COALESCE(new_owner, ''),
			COALESCE(mileage_at_transfer, 0), transfer_date
		FROM ownership_history WHERE vehicle_id = ?
		ORDER BY transfer_date DESC, history_id DESC`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list ownership history: %w", err)
	}
	defer rows.Close()
	var list []*entity.OwnershipHistory
	for rows.Next() {
		var h entity.OwnershipHistory
		if err := rows.Scan(&h.ID, &h.VehicleID, &h.OldOwner, &h.NewOwner, &h.MileageAtTransfer, &h.TransferDate); err != nil {
			return nil, fmt.Errorf("scan ownership history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
