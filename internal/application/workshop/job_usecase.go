package workshop

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Taller-api/internal/domain/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/job"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// JobUseCase orquesta el ciclo de vida, la composición y el costeo de los trabajos.
type JobUseCase struct {
	txRunner  TxRunner
	ledger    *inventory.LedgerUseCase
	repos     Repositories
	generator InvoicePDFGenerator
	workshop  dto.WorkshopInfo
	log       *logger.Logger
}

// NewJobUseCase construye el caso de uso. generator puede ser nil si no se imprimen facturas.
func NewJobUseCase(
	txRunner TxRunner,
	ledger *inventory.LedgerUseCase,
	repos Repositories,
	generator InvoicePDFGenerator,
	workshop dto.WorkshopInfo,
	log *logger.Logger,
) *JobUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &JobUseCase{
		txRunner:  txRunner,
		ledger:    ledger,
		repos:     repos,
		generator: generator,
		workshop:  workshop,
		log:       log,
	}
}

// CreateJob abre un trabajo en estado pending para un vehículo existente.
// Toma una foto del propietario y su teléfono: un traspaso posterior no cambia el trabajo.
func (uc *JobUseCase) CreateJob(ctx context.Context, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if in.MileageIn != nil && *in.MileageIn < 0 {
		return nil, domain.InvalidInputf("kilometraje de entrada negativo")
	}
	v, err := uc.repos.Vehicles.GetByID(ctx, in.VehicleID)
	if err != nil {
		return nil, domain.Storage("leer vehículo", err)
	}
	if v == nil {
		return nil, domain.NotFoundf("vehículo %d", in.VehicleID)
	}
	if in.TechnicianID != nil {
		if err := uc.checkTechnician(ctx, *in.TechnicianID); err != nil {
			return nil, err
		}
	}

	j := &entity.Job{
		VehicleID:    v.ID,
		TechnicianID: in.TechnicianID,
		Status:       entity.JobStatusPending,
		MileageIn:    in.MileageIn,
		LaborHours:   decimal.Zero,
		LaborCost:    decimal.Zero,
		TaxiCost:     decimal.Zero,
		TotalPrice:   decimal.Zero,
		OwnerName:    optional(v.CurrentOwner),
		OwnerPhone:   optional(v.ContactNumber),
	}
	if err := uc.repos.Jobs.Create(ctx, j); err != nil {
		return nil, domain.Storage("crear trabajo", err)
	}
	uc.log.Info().Int64("job_id", j.ID).Str("plate", v.LicensePlate).Msg("trabajo creado")
	out := toJobResponse(j)
	return &out, nil
}

// GetJob devuelve un trabajo.
func (uc *JobUseCase) GetJob(ctx context.Context, jobID int64) (*dto.JobResponse, error) {
	j, err := uc.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	out := toJobResponse(j)
	return &out, nil
}

// GetDetail devuelve el trabajo con vehículo, repuestos, mano de obra, tareas, imágenes y
// el total recalculado al momento (sin persistirlo).
func (uc *JobUseCase) GetDetail(ctx context.Context, jobID int64) (*dto.JobDetailResponse, error) {
	j, err := uc.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	v, err := uc.repos.Vehicles.GetByID(ctx, j.VehicleID)
	if err != nil {
		return nil, domain.Storage("leer vehículo", err)
	}
	if v == nil {
		return nil, domain.NotFoundf("vehículo %d", j.VehicleID)
	}
	lines, err := uc.repos.JobParts.ListByJob(ctx, jobID)
	if err != nil {
		return nil, domain.Storage("listar repuestos", err)
	}
	charges, err := uc.repos.Labor.ListByJob(ctx, jobID)
	if err != nil {
		return nil, domain.Storage("listar mano de obra", err)
	}
	tasks, err := uc.repos.Tasks.ListByJob(ctx, jobID)
	if err != nil {
		return nil, domain.Storage("listar tareas", err)
	}
	images, err := uc.repos.Images.ListByJob(ctx, jobID)
	if err != nil {
		return nil, domain.Storage("listar imágenes", err)
	}

	out := &dto.JobDetailResponse{
		Job:        toJobResponse(j),
		Vehicle:    toVehicleResponse(v),
		Parts:      make([]dto.JobPartResponse, 0, len(lines)),
		Labor:      make([]dto.LaborChargeResponse, 0, len(charges)),
		Tasks:      make([]dto.JobTaskResponse, 0, len(tasks)),
		Images:     make([]dto.JobImageResponse, 0, len(images)),
		FreshTotal: job.RecomputeTotal(j, jobPartValues(lines)),
	}
	for _, l := range lines {
		out.Parts = append(out.Parts, dto.JobPartResponse{
			ID:          l.ID,
			PartID:      l.PartID,
			PartNumber:  l.PartNumber,
			PartName:    l.PartName,
			Quantity:    l.Quantity,
			PriceAtSale: l.PriceAtSale,
			CostAtSale:  l.CostAtSale,
			LineTotal:   l.LineTotal(),
		})
	}
	for _, c := range charges {
		out.Labor = append(out.Labor, dto.LaborChargeResponse{
			ID:             c.ID,
			TechnicianID:   c.TechnicianID,
			HoursWorked:    c.HoursWorked,
			HourlyRate:     c.HourlyRate,
			TotalLaborCost: c.TotalLaborCost,
			RecordedAt:     c.RecordedAt,
		})
	}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, dto.JobTaskResponse{ID: t.ID, Description: t.Description, IsCompleted: t.IsCompleted})
	}
	for _, img := range images {
		out.Images = append(out.Images, dto.JobImageResponse{
			ID: img.ID, ImagePath: img.ImagePath, Caption: img.Caption, CreatedAt: img.CreatedAt,
		})
	}
	return out, nil
}

// ListActive lista los trabajos no completados para el tablero.
func (uc *JobUseCase) ListActive(ctx context.Context, page dto.PageRequest) ([]dto.JobSummaryResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.Jobs.ListActive(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Storage("listar trabajos activos", err)
	}
	return toSummaries(list), nil
}

// ListTechnicianJobs lista los trabajos activos asignados a un técnico, con el propietario
// vigente al momento del servicio.
func (uc *JobUseCase) ListTechnicianJobs(ctx context.Context, technicianID int64) ([]dto.JobSummaryResponse, error) {
	list, err := uc.repos.Jobs.ListActiveByTechnician(ctx, technicianID)
	if err != nil {
		return nil, domain.Storage("listar trabajos del técnico", err)
	}
	uc.log.Debug().Int64("technician_id", technicianID).Int("jobs", len(list)).Msg("trabajos del técnico")
	return toSummaries(list), nil
}

// ListVehicleJobs devuelve el historial de trabajos de un vehículo, del más reciente al más antiguo.
func (uc *JobUseCase) ListVehicleJobs(ctx context.Context, vehicleID int64) ([]dto.JobResponse, error) {
	list, err := uc.repos.Jobs.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, domain.Storage("listar trabajos del vehículo", err)
	}
	out := make([]dto.JobResponse, 0, len(list))
	for _, j := range list {
		out = append(out, toJobResponse(j))
	}
	return out, nil
}

// AssignTechnician asigna un técnico (o lo quita con nil). Independiente del estado del trabajo.
func (uc *JobUseCase) AssignTechnician(ctx context.Context, jobID int64, technicianID *int64) error {
	if technicianID != nil {
		if err := uc.checkTechnician(ctx, *technicianID); err != nil {
			return err
		}
	}
	if err := uc.repos.Jobs.AssignTechnician(ctx, jobID, technicianID); err != nil {
		return domain.Storage("asignar técnico", err)
	}
	return nil
}

// SetTaxiCost fija el costo de taxi/transporte. No recalcula el total.
func (uc *JobUseCase) SetTaxiCost(ctx context.Context, jobID int64, taxiCost decimal.Decimal) error {
	if taxiCost.LessThan(decimal.Zero) {
		return domain.InvalidInputf("el costo de taxi no puede ser negativo")
	}
	if err := uc.repos.Jobs.UpdateTaxiCost(ctx, jobID, taxiCost.Round(domaininv.MoneyPlaces)); err != nil {
		return domain.Storage("actualizar costo de taxi", err)
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *JobUseCase) loadJob(ctx context.Context, jobID int64) (*entity.Job, error) {
	j, err := uc.repos.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, domain.Storage("leer trabajo", err)
	}
	if j == nil {
		return nil, domain.NotFoundf("trabajo %d", jobID)
	}
	return j, nil
}

func (uc *JobUseCase) checkTechnician(ctx context.Context, technicianID int64) error {
	u, err := uc.repos.Users.GetByID(ctx, technicianID)
	if err != nil {
		return domain.Storage("leer técnico", err)
	}
	if u == nil {
		return domain.NotFoundf("técnico %d", technicianID)
	}
	if !u.IsTechnician() {
		return domain.InvalidInputf("el usuario %d no es técnico", technicianID)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func jobPartValues(lines []*entity.JobPartLine) []entity.JobPart {
	out := make([]entity.JobPart, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.JobPart)
	}
	return out
}

func toJobResponse(j *entity.Job) dto.JobResponse {
	next := job.AllowedTargets(j.Status)
	if next == nil {
		next = []string{}
	}
	return dto.JobResponse{
		ID:             j.ID,
		VehicleID:      j.VehicleID,
		TechnicianID:   j.TechnicianID,
		Status:         j.Status,
		AllowedNext:    next,
		MileageIn:      j.MileageIn,
		MileageOut:     j.MileageOut,
		LaborHours:     j.LaborHours,
		LaborCost:      j.LaborCost,
		TaxiCost:       j.TaxiCost,
		TotalPrice:     j.TotalPrice,
		OwnerName:      j.OwnerName,
		OwnerPhone:     j.OwnerPhone,
		InvoiceNumber:  j.InvoiceNumber,
		CompletionDate: j.CompletionDate,
		CreatedAt:      j.CreatedAt,
	}
}

func toVehicleResponse(v *entity.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:            v.ID,
		LicensePlate:  v.LicensePlate,
		VIN:           v.VIN,
		MakeModel:     v.MakeModel,
		CurrentOwner:  v.CurrentOwner,
		ContactNumber: v.ContactNumber,
		PhotoPath:     v.PhotoPath,
		IsArchived:    v.IsArchived,
	}
}

func toSummaries(list []*repository.JobSummary) []dto.JobSummaryResponse {
	out := make([]dto.JobSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.JobSummaryResponse{
			JobID:         s.JobID,
			VehicleID:     s.VehicleID,
			TechnicianID:  s.TechnicianID,
			Status:        s.Status,
			MileageIn:     s.MileageIn,
			CreatedAt:     s.CreatedAt,
			LicensePlate:  s.LicensePlate,
			MakeModel:     s.MakeModel,
			CurrentOwner:  s.OwnerName,
			ContactNumber: s.ContactNumber,
		})
	}
	return out
}
