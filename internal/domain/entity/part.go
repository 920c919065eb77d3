package entity

import "github.com/shopspring/decimal"

// Valores por defecto de una parte creada por recepción.
const (
	DefaultPartCategory  = "General"
	DefaultPartCondition = "new"
	DefaultMinThreshold  = 5
)

// Part representa un repuesto del inventario del taller.
// AvgCost es el costo promedio ponderado (WAC); solo lo modifica una recepción de stock.
// Quantity solo cambia por recepción (suma) o consumo (resta) y nunca es negativa.
type Part struct {
	ID           int64
	PartNumber   string // único
	Name         string
	Quantity     int
	AvgCost      decimal.Decimal
	RetailPrice  decimal.Decimal
	MinThreshold int // punto de reorden
	Category     string
	Condition    string // new, used, refurbished
	PhotoPath    string
}

// BelowThreshold indica si la parte está en o por debajo de su punto de reorden.
func (p *Part) BelowThreshold() bool {
	return p.Quantity <= p.MinThreshold
}

// StockValue es el valor del inventario a costo promedio (Quantity × AvgCost).
func (p *Part) StockValue() decimal.Decimal {
	return p.AvgCost.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
