package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlite/sqlitetest"
)

type fakeExporter struct {
	report *dto.ValuationReport
}

func (f *fakeExporter) ExportValuation(report *dto.ValuationReport) ([]byte, error) {
	f.report = report
	return []byte("xlsx"), nil
}

func TestPartUseCase_ValuationTotales(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)
	require.NoError(t, s.Parts.Create(ctx, &entity.Part{PartNumber: "A", Name: "A", Quantity: 3, AvgCost: dec("9.99"), RetailPrice: dec("15")}))
	require.NoError(t, s.Parts.Create(ctx, &entity.Part{PartNumber: "B", Name: "B", Quantity: 2, AvgCost: dec("0.50"), RetailPrice: dec("1.25")}))

	exp := &fakeExporter{}
	uc := inventory.NewPartUseCase(s.Parts, s.Movements, exp, "Taller Peugeot")
	out, err := uc.ExportValuation(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), out)

	require.NotNil(t, exp.report)
	assert.Equal(t, "Taller Peugeot", exp.report.WorkshopName)
	assert.Len(t, exp.report.Lines, 2)
	assert.Equal(t, 5, exp.report.TotalUnits)
	assert.True(t, exp.report.TotalCost.Equal(dec("30.97")), exp.report.TotalCost.String())
	assert.True(t, exp.report.TotalRetail.Equal(dec("47.50")), exp.report.TotalRetail.String())
}

func TestPartUseCase_UpdateNoTocaStock(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)
	p := &entity.Part{PartNumber: "A", Name: "A", Quantity: 3, AvgCost: dec("9.99")}
	require.NoError(t, s.Parts.Create(ctx, p))

	uc := inventory.NewPartUseCase(s.Parts, s.Movements, nil, "")
	out, err := uc.Update(ctx, p.ID, dto.UpdatePartRequest{PartName: "Filtro", RetailPrice: dec("14"), MinThreshold: 2})
	require.NoError(t, err)
	assert.Equal(t, "Filtro", out.PartName)
	assert.Equal(t, 3, out.Quantity)
	assert.True(t, out.AvgCost.Equal(dec("9.99")))
	assert.Equal(t, entity.DefaultPartCategory, out.Category)

	_, err = uc.Update(ctx, 999, dto.UpdatePartRequest{PartName: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, p.ID, dto.UpdatePartRequest{PartName: "x", RetailPrice: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ExportValuation(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
