package workshop

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/job"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// AddJobPart descuenta stock y agrega la línea al trabajo en una sola transacción.
// La línea guarda el precio de venta y el costo promedio vigentes; si algo falla no queda
// ni el descuento ni la línea.
func (uc *JobUseCase) AddJobPart(ctx context.Context, jobID int64, in dto.AddJobPartRequest) (*dto.AddJobPartResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.InvalidInputf("la cantidad debe ser mayor a 0")
	}
	var (
		line      *entity.JobPart
		remaining int
	)
	err := uc.txRunner.RunWorkshop(ctx, func(
		jobs repository.JobRepository,
		jobParts repository.JobPartRepository,
		_ repository.LaborChargeRepository,
		parts repository.PartRepository,
		movements repository.StockMovementRepository,
	) error {
		j, err := jobs.GetForUpdate(ctx, jobID)
		if err != nil {
			return domain.Storage("leer trabajo", err)
		}
		if j == nil {
			return domain.NotFoundf("trabajo %d", jobID)
		}

		part, newQty, err := uc.ledger.ConsumeInTx(ctx, parts, movements, in.PartID, in.Quantity,
			inventory.JobReference(jobID), uuid.New().String())
		if err != nil {
			return err
		}

		line = &entity.JobPart{
			JobID:       jobID,
			PartID:      part.ID,
			Quantity:    in.Quantity,
			PriceAtSale: part.RetailPrice,
			CostAtSale:  part.AvgCost,
		}
		if err := jobParts.Create(ctx, line); err != nil {
			return domain.Storage("agregar repuesto al trabajo", err)
		}
		remaining = newQty
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("job_id", jobID).Int64("part_id", in.PartID).Int("qty", in.Quantity).
		Int("remaining", remaining).Msg("repuesto agregado al trabajo")
	return &dto.AddJobPartResponse{
		JobPartID:    line.ID,
		PriceAtSale:  line.PriceAtSale,
		CostAtSale:   line.CostAtSale,
		RemainingQty: remaining,
	}, nil
}

// RecordLabor registra una entrada de mano de obra con la tarifa informada.
// El usuario debe existir con rol technician.
// No modifica labor_hours ni labor_cost del trabajo; para eso existe RecomputeLabor.
func (uc *JobUseCase) RecordLabor(ctx context.Context, jobID int64, in dto.RecordLaborRequest) (*dto.RecordLaborResponse, error) {
	total, err := job.LaborTotal(in.HoursWorked, in.HourlyRate)
	if err != nil {
		return nil, err
	}
	if err := uc.checkTechnician(ctx, in.TechnicianID); err != nil {
		return nil, err
	}

	charge := &entity.LaborCharge{
		JobID:          jobID,
		TechnicianID:   in.TechnicianID,
		HoursWorked:    in.HoursWorked,
		HourlyRate:     in.HourlyRate,
		TotalLaborCost: total,
	}
	err = uc.txRunner.RunWorkshop(ctx, func(
		jobs repository.JobRepository,
		_ repository.JobPartRepository,
		labor repository.LaborChargeRepository,
		_ repository.PartRepository,
		_ repository.StockMovementRepository,
	) error {
		j, err := jobs.GetByID(ctx, jobID)
		if err != nil {
			return domain.Storage("leer trabajo", err)
		}
		if j == nil {
			return domain.NotFoundf("trabajo %d", jobID)
		}
		if err := labor.Create(ctx, charge); err != nil {
			return domain.Storage("registrar mano de obra", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("job_id", jobID).Int64("technician_id", in.TechnicianID).
		Str("hours", in.HoursWorked.String()).Str("total", total.StringFixed(2)).Msg("mano de obra registrada")
	return &dto.RecordLaborResponse{LaborID: charge.ID, TotalLaborCost: total}, nil
}

// RecomputeJobTotal recalcula labor_cost + taxi_cost + repuestos y persiste el resultado.
func (uc *JobUseCase) RecomputeJobTotal(ctx context.Context, jobID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := uc.txRunner.RunWorkshop(ctx, func(
		jobs repository.JobRepository,
		jobParts repository.JobPartRepository,
		_ repository.LaborChargeRepository,
		_ repository.PartRepository,
		_ repository.StockMovementRepository,
	) error {
		j, err := lockJob(ctx, jobs, jobID)
		if err != nil {
			return err
		}
		total, err = persistTotal(ctx, jobs, jobParts, j)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	uc.log.Info().Int64("job_id", jobID).Str("total", total.StringFixed(2)).Msg("total recalculado")
	return total, nil
}

// RecomputeLabor suma las entradas de mano de obra y actualiza labor_hours y labor_cost.
func (uc *JobUseCase) RecomputeLabor(ctx context.Context, jobID int64) (hours, cost decimal.Decimal, err error) {
	err = uc.txRunner.RunWorkshop(ctx, func(
		jobs repository.JobRepository,
		_ repository.JobPartRepository,
		labor repository.LaborChargeRepository,
		_ repository.PartRepository,
		_ repository.StockMovementRepository,
	) error {
		j, err := lockJob(ctx, jobs, jobID)
		if err != nil {
			return err
		}
		hours, cost, err = persistLabor(ctx, jobs, labor, j)
		return err
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return hours, cost, nil
}

// Recompute re-agrega la mano de obra y luego recalcula el total, en una sola transacción.
func (uc *JobUseCase) Recompute(ctx context.Context, jobID int64) (*dto.JobResponse, error) {
	var out dto.JobResponse
	err := uc.txRunner.RunWorkshop(ctx, func(
		jobs repository.JobRepository,
		jobParts repository.JobPartRepository,
		labor repository.LaborChargeRepository,
		_ repository.PartRepository,
		_ repository.StockMovementRepository,
	) error {
		j, err := lockJob(ctx, jobs, jobID)
		if err != nil {
			return err
		}
		if _, _, err := persistLabor(ctx, jobs, labor, j); err != nil {
			return err
		}
		if _, err := persistTotal(ctx, jobs, jobParts, j); err != nil {
			return err
		}
		out = toJobResponse(j)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("job_id", jobID).Str("total", out.TotalPrice.StringFixed(2)).Msg("trabajo recalculado")
	return &out, nil
}

func lockJob(ctx context.Context, jobs repository.JobRepository, jobID int64) (*entity.Job, error) {
	j, err := jobs.GetForUpdate(ctx, jobID)
	if err != nil {
		return nil, domain.Storage("leer trabajo", err)
	}
	if j == nil {
		return nil, domain.NotFoundf("trabajo %d", jobID)
	}
	return j, nil
}

// persistLabor actualiza j en memoria además de la fila.
func persistLabor(ctx context.Context, jobs repository.JobRepository, labor repository.LaborChargeRepository, j *entity.Job) (decimal.Decimal, decimal.Decimal, error) {
	charges, err := labor.ListByJob(ctx, j.ID)
	if err != nil {
		return decimal.Zero, decimal.Zero, domain.Storage("listar mano de obra", err)
	}
	values := make([]entity.LaborCharge, 0, len(charges))
	for _, c := range charges {
		values = append(values, *c)
	}
	hours, cost := job.LaborAggregate(values)
	if err := jobs.UpdateLabor(ctx, j.ID, hours, cost); err != nil {
		return decimal.Zero, decimal.Zero, domain.Storage("actualizar mano de obra", err)
	}
	j.LaborHours, j.LaborCost = hours, cost
	return hours, cost, nil
}

func persistTotal(ctx context.Context, jobs repository.JobRepository, jobParts repository.JobPartRepository, j *entity.Job) (decimal.Decimal, error) {
	lines, err := jobParts.ListByJob(ctx, j.ID)
	if err != nil {
		return decimal.Zero, domain.Storage("listar repuestos", err)
	}
	total := job.RecomputeTotal(j, jobPartValues(lines))
	if err := jobs.UpdateTotal(ctx, j.ID, total); err != nil {
		return decimal.Zero, domain.Storage("actualizar total", err)
	}
	j.TotalPrice = total
	return total, nil
}
