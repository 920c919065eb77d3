package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// VehicleRepository define el puerto de persistencia para vehículos.
type VehicleRepository interface {
	Create(ctx context.Context, v *entity.Vehicle) error
	GetByID(ctx context.Context, id int64) (*entity.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*entity.Vehicle, error)
	Update(ctx context.Context, v *entity.Vehicle) error
	List(ctx context.Context, includeArchived bool, limit, offset int) ([]*entity.Vehicle, error)
	DistinctOwners(ctx context.Context) ([]string, error)
	DistinctModels(ctx context.Context) ([]string, error)
}

// OwnershipHistoryRepository es de solo inserción: no expone Update ni Delete.
type OwnershipHistoryRepository interface {
	Append(ctx context.Context, h *entity.OwnershipHistory) error
	ListByVehicle(ctx context.Context, vehicleID int64) ([]*entity.OwnershipHistory, error)
}
