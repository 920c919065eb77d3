package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateJobRequest body para POST /api/jobs.
type CreateJobRequest struct {
	VehicleID    int64  `json:"vehicle_id" validate:"required,gt=0"`
	TechnicianID *int64 `json:"technician_id,omitempty" validate:"omitempty,gt=0"`
	MileageIn    *int64 `json:"mileage_in,omitempty" validate:"omitempty,min=0"`
}

// AssignTechnicianRequest body para PUT /api/jobs/:id/technician. Nil desasigna.
type AssignTechnicianRequest struct {
	TechnicianID *int64 `json:"technician_id" validate:"omitempty,gt=0"`
}

// TaxiCostRequest body para PUT /api/jobs/:id/taxi-cost.
type TaxiCostRequest struct {
	TaxiCost decimal.Decimal `json:"taxi_cost"`
}

// TransitionStatusRequest body para PUT /api/jobs/:id/status.
type TransitionStatusRequest struct {
	Status     string `json:"status" validate:"required"`
	MileageOut *int64 `json:"mileage_out,omitempty"`
}

// TransitionStatusResponse resultado de transition-job-status.
type TransitionStatusResponse struct {
	JobID     int64  `json:"job_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// AddJobPartRequest body para POST /api/jobs/:id/parts.
type AddJobPartRequest struct {
	PartID   int64 `json:"part_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,gt=0"`
}

// AddJobPartResponse resultado de add-job-part.
type AddJobPartResponse struct {
	JobPartID    int64           `json:"job_part_id"`
	PriceAtSale  decimal.Decimal `json:"price_at_sale"`
	CostAtSale   decimal.Decimal `json:"cost_at_sale"`
	RemainingQty int             `json:"remaining_quantity"`
}

// RecordLaborRequest body para POST /api/jobs/:id/labor.
type RecordLaborRequest struct {
	TechnicianID int64           `json:"technician_id" validate:"required,gt=0"`
	HoursWorked  decimal.Decimal `json:"hours_worked"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
}

// RecordLaborResponse resultado de record-labor.
type RecordLaborResponse struct {
	LaborID        int64           `json:"labor_id"`
	TotalLaborCost decimal.Decimal `json:"total_labor_cost"`
}

// AddTaskRequest body para POST /api/jobs/:id/tasks.
type AddTaskRequest struct {
	Description string `json:"description" validate:"required,max=300"`
}

// ToggleTaskRequest body para PUT /api/jobs/:id/tasks/:taskId.
type ToggleTaskRequest struct {
	IsCompleted bool `json:"is_completed"`
}

// AddImageRequest body para POST /api/jobs/:id/images (la subida del archivo es externa).
type AddImageRequest struct {
	ImagePath string `json:"image_path" validate:"required,max=500"`
	Caption   string `json:"caption,omitempty" validate:"omitempty,max=300"`
}

// JobSummaryResponse fila del tablero de trabajos activos.
type JobSummaryResponse struct {
	JobID         int64     `json:"job_id"`
	VehicleID     int64     `json:"vehicle_id"`
	TechnicianID  *int64    `json:"technician_id,omitempty"`
	Status        string    `json:"status"`
	MileageIn     *int64    `json:"mileage_in,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	LicensePlate  string    `json:"license_plate"`
	MakeModel     string    `json:"make_model"`
	CurrentOwner  string    `json:"current_owner"`
	ContactNumber string    `json:"contact_number"`
}

// JobResponse salida de un trabajo.
type JobResponse struct {
	ID             int64           `json:"job_id"`
	VehicleID      int64           `json:"vehicle_id"`
	TechnicianID   *int64          `json:"technician_id,omitempty"`
	Status         string          `json:"status"`
	AllowedNext    []string        `json:"allowed_next"`
	MileageIn      *int64          `json:"mileage_in,omitempty"`
	MileageOut     *int64          `json:"mileage_out,omitempty"`
	LaborHours     decimal.Decimal `json:"labor_hours"`
	LaborCost      decimal.Decimal `json:"labor_cost"`
	TaxiCost       decimal.Decimal `json:"taxi_cost"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	OwnerName      *string         `json:"owner_name,omitempty"`
	OwnerPhone     *string         `json:"owner_phone,omitempty"`
	InvoiceNumber  *string         `json:"invoice_number,omitempty"`
	CompletionDate *time.Time      `json:"completion_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// JobPartResponse línea de repuesto con su foto de precio y costo.
type JobPartResponse struct {
	ID          int64           `json:"id"`
	PartID      int64           `json:"part_id"`
	PartNumber  string          `json:"part_number"`
	PartName    string          `json:"part_name"`
	Quantity    int             `json:"qty"`
	PriceAtSale decimal.Decimal `json:"price_at_sale"`
	CostAtSale  decimal.Decimal `json:"cost_at_sale"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// LaborChargeResponse entrada de mano de obra.
type LaborChargeResponse struct {
	ID             int64           `json:"labor_id"`
	TechnicianID   int64           `json:"technician_id"`
	HoursWorked    decimal.Decimal `json:"hours_worked"`
	HourlyRate     decimal.Decimal `json:"hourly_rate"`
	TotalLaborCost decimal.Decimal `json:"total_labor_cost"`
	RecordedAt     time.Time       `json:"recorded_at"`
}

// JobTaskResponse ítem de la lista de chequeo.
type JobTaskResponse struct {
	ID          int64  `json:"task_id"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
}

// JobImageResponse referencia a una foto del trabajo.
type JobImageResponse struct {
	ID        int64     `json:"image_id"`
	ImagePath string    `json:"image_path"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// JobDetailResponse trabajo con vehículo, líneas, mano de obra, tareas e imágenes.
type JobDetailResponse struct {
	Job     JobResponse           `json:"job"`
	Vehicle VehicleResponse       `json:"vehicle"`
	Parts   []JobPartResponse     `json:"parts"`
	Labor   []LaborChargeResponse `json:"labor"`
	Tasks   []JobTaskResponse     `json:"tasks"`
	Images  []JobImageResponse    `json:"images"`

	// FreshTotal es el total recalculado al momento de la consulta (sin persistir).
	FreshTotal decimal.Decimal `json:"fresh_total"`
}

// WorkshopInfo datos del taller impresos en la factura.
type WorkshopInfo struct {
	Name    string
	Address string
	Phone   string
}

// JobInvoiceData todo lo necesario para renderizar la factura de un trabajo.
type JobInvoiceData struct {
	Workshop      WorkshopInfo
	InvoiceNumber string
	IssuedAt      time.Time
	Detail        JobDetailResponse
	PartsTotal    decimal.Decimal
	Total         decimal.Decimal
}
