package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// StockMovementRepository persiste el historial de recepciones y consumos (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByPart(ctx context.Context, partID int64, limit, offset int) ([]*entity.StockMovement, error)
}
