package vehicle

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con repos de vehículos e historial.
type TxRunner interface {
	RunVehicle(ctx context.Context, fn func(
		vehicles repository.VehicleRepository,
		history repository.OwnershipHistoryRepository,
	) error) error
}
