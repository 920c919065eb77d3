package workshop

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con repos de trabajos e inventario.
// Agregar un repuesto a un trabajo (consumo + línea) y los cambios de estado corren aquí.
type TxRunner interface {
	RunWorkshop(ctx context.Context, fn func(
		jobs repository.JobRepository,
		jobParts repository.JobPartRepository,
		labor repository.LaborChargeRepository,
		parts repository.PartRepository,
		movements repository.StockMovementRepository,
	) error) error
}

// InvoicePDFGenerator renderiza la factura de un trabajo.
type InvoicePDFGenerator interface {
	GenerateJobInvoice(ctx context.Context, data *dto.JobInvoiceData) ([]byte, error)
}

// Repositories agrupa los repositorios sobre el pool que usan las lecturas y ediciones simples.
type Repositories struct {
	Jobs     repository.JobRepository
	JobParts repository.JobPartRepository
	Labor    repository.LaborChargeRepository
	Tasks    repository.JobTaskRepository
	Images   repository.JobImageRepository
	Vehicles repository.VehicleRepository
	Users    repository.UserRepository
}
