package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// PartUseCase consultas y edición descriptiva de repuestos. Cantidad y costo solo cambian vía LedgerUseCase.
type PartUseCase struct {
	partRepo     repository.PartRepository
	movementRepo repository.StockMovementRepository
	exporter     ValuationExporter
	workshopName string
}

// NewPartUseCase construye el caso de uso. exporter puede ser nil si no se usa la exportación.
func NewPartUseCase(
	partRepo repository.PartRepository,
	movementRepo repository.StockMovementRepository,
	exporter ValuationExporter,
	workshopName string,
) *PartUseCase {
	return &PartUseCase{
		partRepo:     partRepo,
		movementRepo: movementRepo,
		exporter:     exporter,
		workshopName: workshopName,
	}
}

// GetByID devuelve una parte.
func (uc *PartUseCase) GetByID(ctx context.Context, id int64) (*dto.PartResponse, error) {
	p, err := uc.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("leer parte", err)
	}
	if p == nil {
		return nil, domain.NotFoundf("parte %d", id)
	}
	out := toPartResponse(p)
	return &out, nil
}

// List lista partes con paginación.
func (uc *PartUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.PartResponse, error) {
	page.DefaultPage()
	list, err := uc.partRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Storage("listar partes", err)
	}
	out := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPartResponse(p))
	}
	return out, nil
}

// Update modifica nombre, precio de venta, umbral, categoría, condición y foto.
func (uc *PartUseCase) Update(ctx context.Context, id int64, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	if strings.TrimSpace(in.PartName) == "" {
		return nil, domain.InvalidInputf("nombre de parte requerido")
	}
	if in.RetailPrice.LessThan(decimal.Zero) {
		return nil, domain.InvalidInputf("el precio de venta no puede ser negativo")
	}
	if in.MinThreshold < 0 {
		return nil, domain.InvalidInputf("el umbral mínimo no puede ser negativo")
	}
	p, err := uc.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("leer parte", err)
	}
	if p == nil {
		return nil, domain.NotFoundf("parte %d", id)
	}
	p.Name = strings.TrimSpace(in.PartName)
	p.RetailPrice = in.RetailPrice
	p.MinThreshold = in.MinThreshold
	p.Category = strings.TrimSpace(in.Category)
	if p.Category == "" {
		p.Category = entity.DefaultPartCategory
	}
	if in.Condition != "" {
		p.Condition = in.Condition
	}
	p.PhotoPath = in.PhotoPath
	if err := uc.partRepo.Update(ctx, p); err != nil {
		return nil, domain.Storage("actualizar parte", err)
	}
	out := toPartResponse(p)
	return &out, nil
}

// Movements lista el historial de recepciones y consumos de una parte.
func (uc *PartUseCase) Movements(ctx context.Context, partID int64, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	page.DefaultPage()
	list, err := uc.movementRepo.ListByPart(ctx, partID, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Storage("listar movimientos", err)
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			UnitCost:      m.UnitCost,
			AvgCostAfter:  m.AvgCostAfter,
			QuantityAfter: m.QuantityAfter,
			Reference:     m.Reference,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}

// Valuation arma el reporte de valorización (cantidad × costo promedio) de todo el inventario.
func (uc *PartUseCase) Valuation(ctx context.Context) (*dto.ValuationReport, error) {
	report := &dto.ValuationReport{
		WorkshopName: uc.workshopName,
		GeneratedAt:  time.Now().UTC(),
		TotalCost:    decimal.Zero,
		TotalRetail:  decimal.Zero,
	}
	const pageSize = 500
	for offset := 0; ; offset += pageSize {
		list, err := uc.partRepo.List(ctx, pageSize, offset)
		if err != nil {
			return nil, domain.Storage("listar partes", err)
		}
		for _, p := range list {
			qty := decimal.NewFromInt(int64(p.Quantity))
			line := dto.ValuationLine{
				PartNumber:  p.PartNumber,
				PartName:    p.Name,
				Category:    p.Category,
				Quantity:    p.Quantity,
				AvgCost:     p.AvgCost,
				StockValue:  p.StockValue().Round(2),
				RetailPrice: p.RetailPrice,
				RetailValue: p.RetailPrice.Mul(qty).Round(2),
			}
			report.Lines = append(report.Lines, line)
			report.TotalUnits += p.Quantity
			report.TotalCost = report.TotalCost.Add(line.StockValue)
			report.TotalRetail = report.TotalRetail.Add(line.RetailValue)
		}
		if len(list) < pageSize {
			break
		}
	}
	return report, nil
}

// ExportValuation genera el XLSX de valorización.
func (uc *PartUseCase) ExportValuation(ctx context.Context) ([]byte, error) {
	if uc.exporter == nil {
		return nil, domain.InvalidInputf("exportación no configurada")
	}
	report, err := uc.Valuation(ctx)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportValuation(report)
}

func toPartResponse(p *entity.Part) dto.PartResponse {
	return dto.PartResponse{
		ID:           p.ID,
		PartNumber:   p.PartNumber,
		PartName:     p.Name,
		Quantity:     p.Quantity,
		AvgCost:      p.AvgCost,
		RetailPrice:  p.RetailPrice,
		MinThreshold: p.MinThreshold,
		Category:     p.Category,
		Condition:    p.Condition,
		PhotoPath:    p.PhotoPath,
	}
}
