package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobPart es una línea de repuesto vendida en un trabajo.
// PriceAtSale y CostAtSale son una copia tomada al momento de la venta; no cambian si luego
// cambia el precio o el costo promedio de la parte.
type JobPart struct {
	ID          int64
	JobID       int64
	PartID      int64
	Quantity    int
	PriceAtSale decimal.Decimal
	CostAtSale  decimal.Decimal
	CreatedAt   time.Time
}

// LineTotal es PriceAtSale × Quantity.
func (p JobPart) LineTotal() decimal.Decimal {
	return p.PriceAtSale.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// JobPartLine es una línea enriquecida con datos de la parte, para lectura e impresión.
type JobPartLine struct {
	JobPart
	PartNumber string
	PartName   string
}
