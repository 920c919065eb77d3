package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// PartRepository define el puerto de persistencia para repuestos (DIP).
// Los métodos Get* devuelven (nil, nil) si no existe.
type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	// CreateIfAbsent inserta la parte salvo que su número ya exista; created=false en ese caso.
	CreateIfAbsent(ctx context.Context, part *entity.Part) (created bool, err error)
	GetByID(ctx context.Context, id int64) (*entity.Part, error)
	GetByNumber(ctx context.Context, partNumber string) (*entity.Part, error)
	// GetForUpdate y GetByNumberForUpdate bloquean la fila dentro de la transacción en curso.
	GetForUpdate(ctx context.Context, id int64) (*entity.Part, error)
	GetByNumberForUpdate(ctx context.Context, partNumber string) (*entity.Part, error)
	// UpdateStock escribe cantidad y costo promedio (solo el libro de inventario lo usa).
	UpdateStock(ctx context.Context, id int64, quantity int, avgCost decimal.Decimal) error
	// Update modifica datos descriptivos; no toca cantidad ni costo.
	Update(ctx context.Context, part *entity.Part) error
	List(ctx context.Context, limit, offset int) ([]*entity.Part, error)
	ListBelowThreshold(ctx context.Context) ([]*entity.Part, error)
	DistinctNames(ctx context.Context) ([]string, error)
}
