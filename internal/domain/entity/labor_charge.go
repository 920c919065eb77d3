package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LaborCharge es una entrada de tiempo de mano de obra. HourlyRate es la tarifa vigente al
// momento del registro, no una referencia a la tarifa actual del técnico.
type LaborCharge struct {
	ID             int64
	JobID          int64
	TechnicianID   int64
	HoursWorked    decimal.Decimal
	HourlyRate     decimal.Decimal
	TotalLaborCost decimal.Decimal
	RecordedAt     time.Time
}
