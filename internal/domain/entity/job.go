package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un trabajo.
const (
	JobStatusPending    = "pending"
	JobStatusInProgress = "in_progress"
	JobStatusWaiting    = "waiting"
	JobStatusCompleted  = "completed"
)

// Job es una orden de trabajo sobre un vehículo.
// OwnerName/OwnerPhone son la foto del propietario al crear el trabajo, de modo que un
// traspaso posterior no altere facturas históricas.
// TotalPrice es un valor cacheado: solo es tan fresco como el último recálculo explícito.
type Job struct {
	ID             int64
	VehicleID      int64
	TechnicianID   *int64
	Status         string
	MileageIn      *int64
	MileageOut     *int64
	LaborHours     decimal.Decimal
	LaborCost      decimal.Decimal
	TaxiCost       decimal.Decimal
	TotalPrice     decimal.Decimal
	OwnerName      *string
	OwnerPhone     *string
	InvoiceNumber  *string
	CompletionDate *time.Time
	CreatedAt      time.Time
}

// EntryMileage devuelve el kilometraje de entrada (0 si no se registró).
func (j *Job) EntryMileage() int64 {
	if j.MileageIn == nil {
		return 0
	}
	return *j.MileageIn
}

// IsCompleted indica si el trabajo está en estado terminal.
func (j *Job) IsCompleted() bool {
	return j.Status == JobStatusCompleted
}
