package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlite/sqlitetest"
)

func TestGenerateReplenishmentList_OrdenPorDeficit(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)

	for _, p := range []*entity.Part{
		{PartNumber: "A", Name: "Filtro aire", Quantity: 4, MinThreshold: 5, AvgCost: dec("2.00")},
		{PartNumber: "B", Name: "Pastillas", Quantity: 0, MinThreshold: 10, AvgCost: dec("7.50")},
		{PartNumber: "C", Name: "Bujía", Quantity: 20, MinThreshold: 5, AvgCost: dec("1.00")},
	} {
		require.NoError(t, s.Parts.Create(ctx, p))
	}

	list, err := inventory.NewReplenishmentUseCase(s.Parts).GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "B", list[0].PartNumber)
	assert.Equal(t, 1, list[0].Priority)
	assert.True(t, list[0].IdealStock.Equal(dec("15")))
	assert.True(t, list[0].SuggestedOrderQty.Equal(dec("15")))
	assert.True(t, list[0].EstimatedOrderCost.Equal(dec("112.50")))

	assert.Equal(t, "A", list[1].PartNumber)
	assert.True(t, list[1].SuggestedOrderQty.Equal(dec("3.5")))
}

func TestGenerateReplenishmentList_Vacia(t *testing.T) {
	s := sqlitetest.NewStore(t)
	list, err := inventory.NewReplenishmentUseCase(s.Parts).GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.ReplenishmentSuggestionDTO{}, list)
}
