package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

const jobColumns = `job_id, vehicle_id, technician_id, status, mileage_in, mileage_out,
	COALESCE(labor_hours, 0), COALESCE(labor_cost, 0), COALESCE(taxi_cost, 0), COALESCE(total_price, 0),
	owner_name, owner_phone, invoice_number, completion_date, created_at`

// El propietario del tablero es el del momento del servicio: la foto del trabajo, o el dueño
// anterior al primer traspaso posterior a la creación, o el propietario actual.
const jobSummarySelect = `
	SELECT j.job_id, j.vehicle_id, j.technician_id, j.status, j.mileage_in, j.created_at,
		v.license_plate, COALESCE(v.make_model, ''),
		COALESCE(j.owner_name,
			(SELECT oh.old_owner FROM ownership_history oh
			 WHERE oh.vehicle_id = j.vehicle_id AND oh.transfer_date > j.created_at
			 ORDER BY oh.transfer_date ASC LIMIT 1),
			v.current_owner, ''),
		COALESCE(j.owner_phone, v.contact_number, '')
	FROM jobs j
	JOIN vehicles v ON j.vehicle_id = v.vehicle_id`

// JobRepo implementación del puerto JobRepository.
type JobRepo struct {
	conn
}

// NewJobRepository construye el repositorio de trabajos. Pasar pool o tx (Querier).
func NewJobRepository(q Querier, d Dialect) *JobRepo {
	return &JobRepo{conn{q: q, d: d}}
}

// Create persiste un trabajo. Status y CreatedAt se completan si vienen vacíos.
func (r *JobRepo) Create(ctx context.Context, j *entity.Job) error {
	if j.Status == "" {
		j.Status = entity.JobStatusPending
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = nowUTC()
	}
	id, err := r.insertReturningID(ctx, `
		INSERT INTO jobs (vehicle_id, technician_id, status, mileage_in, labor_hours, labor_cost,
			taxi_cost, total_price, owner_name, owner_phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING job_id`,
		j.VehicleID, j.TechnicianID, j.Status, j.MileageIn, j.LaborHours, j.LaborCost,
		j.TaxiCost, j.TotalPrice, j.OwnerName, j.OwnerPhone, j.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	j.ID = id
	return nil
}

func (r *JobRepo) getOne(ctx context.Context, query string, id int64) (*entity.Job, error) {
	j, err := scanJob(r.queryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return j, nil
}

// GetByID obtiene un trabajo por ID.
func (r *JobRepo) GetByID(ctx context.Context, id int64) (*entity.Job, error) {
	j, err := r.getOne(ctx, `SELECT `+jobColumns+` FROM jobs WHERE job_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

// GetForUpdate obtiene el trabajo bloqueando la fila (solo dentro de una transacción).
func (r *JobRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Job, error) {
	j, err := r.getOne(ctx, r.forUpdate(`SELECT `+jobColumns+` FROM jobs WHERE job_id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("get job for update: %w", err)
	}
	return j, nil
}

// UpdateStatus escribe un cambio de estado ya validado. Un MileageOut o CompletionDate nil
// conserva el valor almacenado.
func (r *JobRepo) UpdateStatus(ctx context.Context, id int64, c repository.StatusChange) error {
	return r.updateOne(ctx, "update job status", id, `
		UPDATE jobs SET status = ?,
			mileage_out = COALESCE(?, mileage_out),
			completion_date = COALESCE(?, completion_date)
		WHERE job_id = ?`, c.Status, c.MileageOut, c.CompletionDate, id)
}

// AssignTechnician asigna (o quita, con nil) el técnico del trabajo.
func (r *JobRepo) AssignTechnician(ctx context.Context, id int64, technicianID *int64) error {
	return r.updateOne(ctx, "assign technician", id,
		`UPDATE jobs SET technician_id = ? WHERE job_id = ?`, technicianID, id)
}

// UpdateTaxiCost fija el costo de taxi/transporte del trabajo.
func (r *JobRepo) UpdateTaxiCost(ctx context.Context, id int64, taxiCost decimal.Decimal) error {
	return r.updateOne(ctx, "update taxi cost", id,
		`UPDATE jobs SET taxi_cost = ? WHERE job_id = ?`, taxiCost, id)
}

// UpdateLabor fija los agregados de mano de obra del trabajo.
func (r *JobRepo) UpdateLabor(ctx context.Context, id int64, hours, cost decimal.Decimal) error {
	return r.updateOne(ctx, "update job labor", id,
		`UPDATE jobs SET labor_hours = ?, labor_cost = ? WHERE job_id = ?`, hours, cost, id)
}

// UpdateTotal guarda el total recalculado.
func (r *JobRepo) UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	return r.updateOne(ctx, "update job total", id,
		`UPDATE jobs SET total_price = ? WHERE job_id = ?`, total, id)
}

// SetInvoiceNumber asigna el número de factura.
func (r *JobRepo) SetInvoiceNumber(ctx context.Context, id int64, number string) error {
	return r.updateOne(ctx, "set invoice number", id,
		`UPDATE jobs SET invoice_number = ? WHERE job_id = ?`, number, id)
}

func (r *JobRepo) updateOne(ctx context.Context, op string, id int64, query string, args ...any) error {
	res, err := r.exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("trabajo %d", id)
	}
	return nil
}

// ListActive lista los trabajos no completados, del más reciente al más antiguo.
func (r *JobRepo) ListActive(ctx context.Context, limit, offset int) ([]*repository.JobSummary, error) {
	rows, err := r.query(ctx, jobSummarySelect+`
		WHERE j.status <> ? ORDER BY j.created_at DESC, j.job_id DESC LIMIT ? OFFSET ?`,
		entity.JobStatusCompleted, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list active jobs: %w", err)
	}
	return scanJobSummaries(rows)
}

// ListActiveByTechnician lista los trabajos no completados asignados a un técnico.
func (r *JobRepo) ListActiveByTechnician(ctx context.Context, technicianID int64) ([]*repository.JobSummary, error) {
	rows, err := r.query(ctx, jobSummarySelect+`
		WHERE j.technician_id = ? AND j.status <> ? ORDER BY j.created_at DESC, j.job_id DESC`,
		technicianID, entity.JobStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("list technician jobs: %w", err)
	}
	return scanJobSummaries(rows)
}

// ListByVehicle lista el historial de trabajos de un vehículo.
func (r *JobRepo) ListByVehicle(ctx context.Context, vehicleID int64) ([]*entity.Job, error) {
	rows, err := r.query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE vehicle_id = ? ORDER BY created_at DESC, job_id DESC`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list vehicle jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, j)
	}
	return list, rows.Err()
}

func scanJob(s rowScanner) (*entity.Job, error) {
	var j entity.Job
	if err := s.Scan(&j.ID, &j.VehicleID, &j.TechnicianID, &j.Status, &j.MileageIn, &j.MileageOut,
		&j.LaborHours, &j.LaborCost, &j.TaxiCost, &j.TotalPrice,
		&j.OwnerName, &j.OwnerPhone, &j.InvoiceNumber, &j.CompletionDate, &j.CreatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

func scanJobSummaries(rows *sql.Rows) ([]*repository.JobSummary, error) {
	defer rows.Close()
	var list []*repository.JobSummary
	for rows.Next() {
		var s repository.JobSummary
		if err := rows.Scan(&s.JobID, &s.VehicleID, &s.TechnicianID, &s.Status, &s.MileageIn, &s.CreatedAt,
			&s.LicensePlate, &s.MakeModel, &s.OwnerName, &s.ContactNumber); err != nil {
			return nil, fmt.Errorf("scan job summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
