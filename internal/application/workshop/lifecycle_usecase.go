package workshop

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/job"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TransitionStatus cambia el estado de un trabajo según la tabla de transiciones.
// El kilometraje de salida solo se valida y guarda al entrar a completed; la validación y la escritura ocurren en la misma transacción con la fila
// del trabajo bloqueada. Entrar a completed sella completion_date.
func (uc *JobUseCase) TransitionStatus(ctx context.Context, jobID int64, in dto.TransitionStatusRequest) (*dto.TransitionStatusResponse, error) {
	if !job.IsValidStatus(in.Status) {
		return nil, domain.InvalidInputf("estado %q desconocido", in.Status)
	}
	var oldStatus string
	err := uc.txRunner.RunWorkshop(ctx, func(
		jobs repository.JobRepository,
		_ repository.JobPartRepository,
		_ repository.LaborChargeRepository,
		_ repository.PartRepository,
		_ repository.StockMovementRepository,
	) error {
		j, err := jobs.GetForUpdate(ctx, jobID)
		if err != nil {
			return domain.Storage("leer trabajo", err)
		}
		if j == nil {
			return domain.NotFoundf("trabajo %d", jobID)
		}
		if err := job.CheckTransition(job.TransitionRequest{
			From:       j.Status,
			To:         in.Status,
			MileageIn:  j.EntryMileage(),
			MileageOut: in.MileageOut,
		}); err != nil {
			return err
		}

		change := repository.StatusChange{Status: in.Status}
		if in.Status == entity.JobStatusCompleted {
			done := time.Now().UTC()
			change.CompletionDate = &done
			change.MileageOut = in.MileageOut
		}
		if err := jobs.UpdateStatus(ctx, jobID, change); err != nil {
			return domain.Storage("actualizar estado", err)
		}
		oldStatus = j.Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("job_id", jobID).Str("from", oldStatus).Str("to", in.Status).Msg("cambio de estado")
	return &dto.TransitionStatusResponse{JobID: jobID, OldStatus: oldStatus, NewStatus: in.Status}, nil
}
