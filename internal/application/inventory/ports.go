package inventory

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		parts repository.PartRepository,
		movements repository.StockMovementRepository,
	) error) error
}

// ValuationExporter genera el archivo de valorización de inventario (XLSX).
type ValuationExporter interface {
	ExportValuation(report *dto.ValuationReport) ([]byte, error)
}
