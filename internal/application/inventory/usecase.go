package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// LedgerUseCase mantiene cantidad en mano y costo promedio ponderado por parte.
// Cada operación es una lectura-modificación-escritura atómica dentro de TxRunner.Run.
type LedgerUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, log *logger.Logger) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{txRunner: txRunner, log: log}
}

// ReceiveInput entrada de una recepción de stock.
// RetailPrice, Category y PartName solo se usan si la parte no existe todavía.
type ReceiveInput struct {
	PartNumber  string
	Quantity    int
	UnitCost    decimal.Decimal
	RetailPrice *decimal.Decimal
	Category    string
	PartName    string
	Reference   string
}

// ReceiveResult estado de la parte tras la recepción.
type ReceiveResult struct {
	PartID   int64
	Quantity int
	AvgCost  decimal.Decimal
	Created  bool
}

// Receive suma stock a la parte (creándola si no existe) y recalcula el costo promedio,
// redondeado a 2 decimales en cada recepción.
func (uc *LedgerUseCase) Receive(ctx context.Context, in ReceiveInput) (*ReceiveResult, error) {
	in.PartNumber = strings.TrimSpace(in.PartNumber)
	if in.PartNumber == "" {
		return nil, domain.InvalidInputf("número de parte requerido")
	}
	if in.Quantity <= 0 {
		return nil, domain.InvalidInputf("la cantidad debe ser mayor a 0")
	}
	if in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.InvalidInputf("el costo unitario no puede ser negativo")
	}
	if in.RetailPrice != nil && in.RetailPrice.LessThan(decimal.Zero) {
		return nil, domain.InvalidInputf("el precio de venta no puede ser negativo")
	}

	var result ReceiveResult
	txID := uuid.New().String()
	err := uc.txRunner.Run(ctx, func(parts repository.PartRepository, movements repository.StockMovementRepository) error {
		part, err := parts.GetByNumberForUpdate(ctx, in.PartNumber)
		if err != nil {
			return domain.Storage("leer parte", err)
		}

		if part == nil {
			fresh := newPartFromReceipt(in)
			created, err := parts.CreateIfAbsent(ctx, fresh)
			if err != nil {
				return domain.Storage("crear parte", err)
			}
			if created {
				part = fresh
				result.Created = true
			} else {
				// otra recepción creó el número entre la lectura y el insert
				part, err = parts.GetByNumberForUpdate(ctx, in.PartNumber)
				if err != nil {
					return domain.Storage("leer parte", err)
				}
				if part == nil {
					return domain.Storage("leer parte", fmt.Errorf("parte %s no visible tras conflicto", in.PartNumber))
				}
			}
		}
		if !result.Created {
			newAvg := inventory.CostCalculator(part.Quantity, part.AvgCost, in.Quantity, in.UnitCost)
			part.Quantity += in.Quantity
			part.AvgCost = newAvg
			if err := parts.UpdateStock(ctx, part.ID, part.Quantity, part.AvgCost); err != nil {
				return domain.Storage("actualizar stock", err)
			}
		}

		mov := &entity.StockMovement{
			TransactionID: txID,
			PartID:        part.ID,
			Type:          entity.MovementTypeIn,
			Quantity:      in.Quantity,
			UnitCost:      in.UnitCost,
			AvgCostAfter:  part.AvgCost,
			QuantityAfter: part.Quantity,
			Reference:     in.Reference,
			CreatedAt:     time.Now().UTC(),
		}
		if err := movements.Create(ctx, mov); err != nil {
			return domain.Storage("registrar movimiento", err)
		}
		result.PartID = part.ID
		result.Quantity = part.Quantity
		result.AvgCost = part.AvgCost
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("part_number", in.PartNumber).
		Int("received", in.Quantity).
		Int("quantity", result.Quantity).
		Str("avg_cost", result.AvgCost.StringFixed(inventory.MoneyPlaces)).
		Bool("created", result.Created).
		Msg("recepción de stock")
	return &result, nil
}

func newPartFromReceipt(in ReceiveInput) *entity.Part {
	name := strings.TrimSpace(in.PartName)
	if name == "" {
		name = in.PartNumber
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = entity.DefaultPartCategory
	}
	retail := decimal.Zero
	if in.RetailPrice != nil {
		retail = *in.RetailPrice
	}
	return &entity.Part{
		PartNumber:   in.PartNumber,
		Name:         name,
		Quantity:     in.Quantity,
		AvgCost:      inventory.InitialCost(in.UnitCost),
		RetailPrice:  retail,
		MinThreshold: entity.DefaultMinThreshold,
		Category:     category,
		Condition:    entity.DefaultPartCondition,
	}
}

// Consume descuenta quantity de la parte (todo o nada) y devuelve la nueva cantidad.
// No modifica el costo promedio.
func (uc *LedgerUseCase) Consume(ctx context.Context, partID int64, quantity int, reference string) (int, error) {
	if quantity <= 0 {
		return 0, domain.InvalidInputf("la cantidad debe ser mayor a 0")
	}
	var newQty int
	err := uc.txRunner.Run(ctx, func(parts repository.PartRepository, movements repository.StockMovementRepository) error {
		var err error
		_, newQty, err = uc.ConsumeInTx(ctx, parts, movements, partID, quantity, reference, uuid.New().String())
		return err
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Int64("part_id", partID).Int("consumed", quantity).Int("quantity", newQty).Msg("consumo de stock")
	return newQty, nil
}

// ConsumeInTx ejecuta un consumo usando los repositorios proporcionados (misma transacción del caller).
// Devuelve la parte tal como estaba antes del descuento (para tomar la foto de precio y costo)
// y la nueva cantidad.
func (uc *LedgerUseCase) ConsumeInTx(
	ctx context.Context,
	parts repository.PartRepository,
	movements repository.StockMovementRepository,
	partID int64,
	quantity int,
	reference, transactionID string,
) (*entity.Part, int, error) {
	if quantity <= 0 {
		return nil, 0, domain.InvalidInputf("la cantidad debe ser mayor a 0")
	}
	part, err := parts.GetForUpdate(ctx, partID)
	if err != nil {
		return nil, 0, domain.Storage("leer parte", err)
	}
	if part == nil {
		return nil, 0, domain.NotFoundf("parte %d", partID)
	}
	if !inventory.CanConsume(part.Quantity, quantity) {
		return nil, 0, &domain.StockError{
			PartID: part.ID, PartNo: part.PartNumber, Available: part.Quantity, Requested: quantity,
		}
	}

	newQty := part.Quantity - quantity
	if err := parts.UpdateStock(ctx, part.ID, newQty, part.AvgCost); err != nil {
		return nil, 0, domain.Storage("actualizar stock", err)
	}
	mov := &entity.StockMovement{
		TransactionID: transactionID,
		PartID:        part.ID,
		Type:          entity.MovementTypeOut,
		Quantity:      -quantity,
		UnitCost:      part.AvgCost,
		AvgCostAfter:  part.AvgCost,
		QuantityAfter: newQty,
		Reference:     reference,
		CreatedAt:     time.Now().UTC(),
	}
	if err := movements.Create(ctx, mov); err != nil {
		return nil, 0, domain.Storage("registrar movimiento", err)
	}
	return part, newQty, nil
}

// JobReference es la referencia de movimiento para consumos hechos desde un trabajo.
func JobReference(jobID int64) string {
	return fmt.Sprintf("job:%d", jobID)
}
