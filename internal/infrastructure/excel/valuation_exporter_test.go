package excel_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/infrastructure/excel"
)

func TestExportValuation_FilasYTotales(t *testing.T) {
	report := &dto.ValuationReport{
		WorkshopName: "Taller Peugeot",
		GeneratedAt:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Lines: []dto.ValuationLine{{
			PartNumber: "PG-1", PartName: "Filtro", Category: "Filtros", Quantity: 3,
			AvgCost: decimal.RequireFromString("9.99"), StockValue: decimal.RequireFromString("29.97"),
			RetailPrice: decimal.RequireFromString("15"), RetailValue: decimal.RequireFromString("45"),
		}},
		TotalUnits:  3,
		TotalCost:   decimal.RequireFromString("29.97"),
		TotalRetail: decimal.RequireFromString("45"),
	}

	out, err := excel.NewValuationExporter().ExportValuation(report)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(excel.SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Taller Peugeot", v)

	v, err = f.GetCellValue(excel.SheetName, "A5")
	require.NoError(t, err)
	assert.Equal(t, "PG-1", v)

	v, err = f.GetCellValue(excel.SheetName, "D5")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	v, err = f.GetCellValue(excel.SheetName, "A6")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", v)

	v, err = f.GetCellValue(excel.SheetName, "F6")
	require.NoError(t, err)
	assert.Equal(t, "29.97", v)
}
