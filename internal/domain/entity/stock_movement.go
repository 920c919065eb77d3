package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeIn  = "IN"  // recepción
	MovementTypeOut = "OUT" // consumo (venta en un trabajo o salida manual)
)

// StockMovement registra cada recepción o consumo aplicado a una parte.
// Es de solo inserción; sirve de auditoría del costo promedio.
type StockMovement struct {
	ID            int64
	TransactionID string // UUID por operación
	PartID        int64
	Type          string
	Quantity      int // positivo en IN, negativo en OUT
	UnitCost      decimal.Decimal
	AvgCostAfter  decimal.Decimal
	QuantityAfter int
	Reference     string // ej. "job:42"
	CreatedAt     time.Time
}
