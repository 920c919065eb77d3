package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de repuestos.
type ReplenishmentUseCase struct {
	partRepo repository.PartRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(partRepo repository.PartRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{partRepo: partRepo}
}

// GenerateReplenishmentList devuelve las partes en o por debajo de su umbral mínimo con la cantidad
// sugerida de pedido (umbral × 1.5 − stock), ordenadas por mayor déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	parts, err := uc.partRepo.ListBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	factor := decimal.NewFromFloat(1.5)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(parts))
	for _, p := range parts {
		idealStock := decimal.NewFromInt(int64(p.MinThreshold)).Mul(factor)
		suggestedQty := idealStock.Sub(decimal.NewFromInt(int64(p.Quantity)))
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			PartID:             p.ID,
			PartNumber:         p.PartNumber,
			PartName:           p.Name,
			CurrentStock:       p.Quantity,
			MinThreshold:       p.MinThreshold,
			IdealStock:         idealStock,
			SuggestedOrderQty:  suggestedQty,
			UnitCost:           p.AvgCost,
			EstimatedOrderCost: suggestedQty.Mul(p.AvgCost).Round(2),
		})
	}

	// Mayor déficit absoluto primero; a igual déficit, menor stock; luego número de parte.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA := a.MinThreshold - a.CurrentStock
		defB := b.MinThreshold - b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		if a.CurrentStock != b.CurrentStock {
			return a.CurrentStock < b.CurrentStock
		}
		return a.PartNumber < b.PartNumber
	})

	// Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
