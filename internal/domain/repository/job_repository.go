package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// JobSummary es la vista de tablero de un trabajo activo, con datos del vehículo y el
// propietario vigente al momento del servicio.
type JobSummary struct {
	JobID         int64
	VehicleID     int64
	TechnicianID  *int64
	Status        string
	MileageIn     *int64
	CreatedAt     time.Time
	LicensePlate  string
	MakeModel     string
	OwnerName     string
	ContactNumber string
}

// StatusChange describe la escritura de un cambio de estado ya validado.
type StatusChange struct {
	Status         string
	MileageOut     *int64
	CompletionDate *time.Time
}

// JobRepository define el puerto de persistencia para trabajos.
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id int64) (*entity.Job, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Job, error)
	UpdateStatus(ctx context.Context, id int64, change StatusChange) error
	AssignTechnician(ctx context.Context, id int64, technicianID *int64) error
	UpdateTaxiCost(ctx context.Context, id int64, taxiCost decimal.Decimal) error
	UpdateLabor(ctx context.Context, id int64, hours, cost decimal.Decimal) error
	UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error
	SetInvoiceNumber(ctx context.Context, id int64, number string) error
	ListActive(ctx context.Context, limit, offset int) ([]*JobSummary, error)
	ListActiveByTechnician(ctx context.Context, technicianID int64) ([]*JobSummary, error)
	ListByVehicle(ctx context.Context, vehicleID int64) ([]*entity.Job, error)
}

// JobPartRepository persiste líneas de repuestos. No hay Update: precio y costo son inmutables.
type JobPartRepository interface {
	Create(ctx context.Context, line *entity.JobPart) error
	ListByJob(ctx context.Context, jobID int64) ([]*entity.JobPartLine, error)
}

// LaborChargeRepository persiste entradas de mano de obra (solo inserción).
type LaborChargeRepository interface {
	Create(ctx context.Context, charge *entity.LaborCharge) error
	ListByJob(ctx context.Context, jobID int64) ([]*entity.LaborCharge, error)
}

// JobTaskRepository persiste la lista de chequeo de un trabajo.
type JobTaskRepository interface {
	Create(ctx context.Context, task *entity.JobTask) error
	GetByID(ctx context.Context, id int64) (*entity.JobTask, error)
	SetCompleted(ctx context.Context, id int64, completed bool) error
	Delete(ctx context.Context, id int64) error
	ListByJob(ctx context.Context, jobID int64) ([]*entity.JobTask, error)
}

// JobImageRepository persiste referencias a fotos de un trabajo.
type JobImageRepository interface {
	Create(ctx context.Context, image *entity.JobImage) error
	ListByJob(ctx context.Context, jobID int64) ([]*entity.JobImage, error)
}
