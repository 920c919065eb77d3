package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveStockRequest body para POST /api/inventory/receipts.
// RetailPrice y Category solo se aplican cuando la parte se crea en esta recepción.
type ReceiveStockRequest struct {
	PartNumber  string           `json:"part_number" validate:"required,max=64"`
	PartName    string           `json:"part_name,omitempty" validate:"omitempty,max=200"`
	Quantity    int              `json:"quantity" validate:"required,gt=0"`
	UnitCost    decimal.Decimal  `json:"unit_cost"`
	RetailPrice *decimal.Decimal `json:"retail_price,omitempty"`
	Category    string           `json:"category,omitempty" validate:"omitempty,max=100"`
}

// ReceiveStockResponse resultado de receive-stock.
type ReceiveStockResponse struct {
	PartID   int64           `json:"part_id"`
	Quantity int             `json:"quantity"`
	AvgCost  decimal.Decimal `json:"avg_cost"`
	Created  bool            `json:"created"`
}

// ConsumeStockRequest body para POST /api/inventory/consume.
type ConsumeStockRequest struct {
	PartID    int64  `json:"part_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Reference string `json:"reference,omitempty" validate:"omitempty,max=100"`
}

// ConsumeStockResponse resultado de consume-stock.
type ConsumeStockResponse struct {
	PartID   int64 `json:"part_id"`
	Quantity int   `json:"quantity"`
}

// UpdatePartRequest body para PUT /api/parts/:id (datos descriptivos, no stock ni costo).
type UpdatePartRequest struct {
	PartName     string          `json:"part_name" validate:"required,max=200"`
	RetailPrice  decimal.Decimal `json:"retail_price"`
	MinThreshold int             `json:"min_threshold" validate:"min=0"`
	Category     string          `json:"category" validate:"omitempty,max=100"`
	Condition    string          `json:"condition" validate:"omitempty,oneof=new used refurbished"`
	PhotoPath    string          `json:"photo_path,omitempty"`
}

// PartResponse salida de una parte del inventario.
type PartResponse struct {
	ID           int64           `json:"part_id"`
	PartNumber   string          `json:"part_number"`
	PartName     string          `json:"part_name"`
	Quantity     int             `json:"total_quantity"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	RetailPrice  decimal.Decimal `json:"retail_price"`
	MinThreshold int             `json:"min_threshold"`
	Category     string          `json:"category"`
	Condition    string          `json:"condition"`
	PhotoPath    string          `json:"photo_path,omitempty"`
}

// StockMovementResponse salida de un movimiento del libro de inventario.
type StockMovementResponse struct {
	ID            int64           `json:"movement_id"`
	TransactionID string          `json:"transaction_id"`
	Type          string          `json:"type"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	AvgCostAfter  decimal.Decimal `json:"avg_cost_after"`
	QuantityAfter int             `json:"quantity_after"`
	Reference     string          `json:"reference,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para una parte
// que se encuentra en o por debajo de su umbral mínimo.
type ReplenishmentSuggestionDTO struct {
	PartID             int64           `json:"part_id"`
	PartNumber         string          `json:"part_number"`
	PartName           string          `json:"part_name"`
	CurrentStock       int             `json:"current_stock"`
	MinThreshold       int             `json:"min_threshold"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`          // MinThreshold * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // costo promedio ponderado
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`             // 1 = más urgente
}

// ValuationLine una fila del reporte de valorización de inventario.
type ValuationLine struct {
	PartNumber  string
	PartName    string
	Category    string
	Quantity    int
	AvgCost     decimal.Decimal
	StockValue  decimal.Decimal // Quantity × AvgCost
	RetailPrice decimal.Decimal
	RetailValue decimal.Decimal // Quantity × RetailPrice
}

// ValuationReport reporte completo con totales.
type ValuationReport struct {
	WorkshopName string
	GeneratedAt  time.Time
	Lines        []ValuationLine
	TotalUnits   int
	TotalCost    decimal.Decimal
	TotalRetail  decimal.Decimal
}
