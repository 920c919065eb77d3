package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
)

var _ inventory.ValuationExporter = (*ValuationExporter)(nil)

// SheetName es la hoja donde se escribe la valorización.
const SheetName = "Inventario"

var valuationHeaders = []string{
	"Número de parte", "Nombre", "Categoría", "Cantidad",
	"Costo promedio", "Valor a costo", "Precio de venta", "Valor a precio de venta",
}

// ValuationExporter genera el reporte de valorización de inventario en XLSX con excelize.
type ValuationExporter struct{}

// NewValuationExporter construye el exportador.
func NewValuationExporter() *ValuationExporter {
	return &ValuationExporter{}
}

// ExportValuation escribe encabezado, una fila por parte y una fila de totales.
func (e *ValuationExporter) ExportValuation(report *dto.ValuationReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}

	if err := f.SetCellValue(SheetName, "A1", report.WorkshopName); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(SheetName, "A2", "Generado: "+report.GeneratedAt.Format("2006-01-02 15:04")); err != nil {
		return nil, err
	}

	const headerRow = 4
	for i, h := range valuationHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("estilo: %w", err)
	}
	if err := f.SetRowStyle(SheetName, headerRow, headerRow, bold); err != nil {
		return nil, err
	}

	row := headerRow + 1
	for _, l := range report.Lines {
		values := []any{
			l.PartNumber, l.PartName, l.Category, l.Quantity,
			l.AvgCost.InexactFloat64(), l.StockValue.InexactFloat64(),
			l.RetailPrice.InexactFloat64(), l.RetailValue.InexactFloat64(),
		}
		if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, fmt.Errorf("fila %d: %w", row, err)
		}
		row++
	}

	totals := []any{
		"TOTAL", "", "", report.TotalUnits,
		"", report.TotalCost.InexactFloat64(), "", report.TotalRetail.InexactFloat64(),
	}
	if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", row), &totals); err != nil {
		return nil, fmt.Errorf("fila de totales: %w", err)
	}
	if err := f.SetRowStyle(SheetName, row, row, bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "A", "H", 18); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
