package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

const vehicleColumns = `vehicle_id, license_plate, COALESCE(vin, ''), COALESCE(make_model, ''),
	COALESCE(current_owner, ''), COALESCE(contact_number, ''), COALESCE(photo_path, ''), is_archived`

// VehicleRepo implementación del puerto VehicleRepository.
type VehicleRepo struct {
	conn
}

// NewVehicleRepository construye el repositorio de vehículos. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier, d Dialect) *VehicleRepo {
	return &VehicleRepo{conn{q: q, d: d}}
}

// Create persiste un vehículo. La placa es única.
func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	id, err := r.insertReturningID(ctx, `
		INSERT INTO vehicles (license_plate, vin, make_model, current_owner, contact_number, photo_path, is_archived, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING vehicle_id`,
		v.LicensePlate, nullString(v.VIN), nullString(v.MakeModel), nullString(v.CurrentOwner),
		nullString(v.ContactNumber), nullString(v.PhotoPath), v.IsArchived, nowUTC(),
	)
	if err != nil {
		if r.d.IsUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	v.ID = id
	return nil
}

func (r *VehicleRepo) getOne(ctx context.Context, where string, arg any) (*entity.Vehicle, error) {
	v, err := scanVehicle(r.queryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

// GetByID obtiene un vehículo por ID.
func (r *VehicleRepo) GetByID(ctx context.Context, id int64) (*entity.Vehicle, error) {
	v, err := r.getOne(ctx, `vehicle_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

// GetByPlate obtiene un vehículo por placa (ya normalizada).
func (r *VehicleRepo) GetByPlate(ctx context.Context, plate string) (*entity.Vehicle, error) {
	v, err := r.getOne(ctx, `license_plate = ?`, plate)
	if err != nil {
		return nil, fmt.Errorf("get vehicle by plate: %w", err)
	}
	return v, nil
}

// Update actualiza todos los datos del vehículo salvo la placa.
func (r *VehicleRepo) Update(ctx context.Context, v *entity.Vehicle) error {
	res, err := r.exec(ctx, `
		UPDATE vehicles SET vin = ?, make_model = ?, current_owner = ?, contact_number = ?,
			photo_path = ?, is_archived = ?
		WHERE vehicle_id = ?`,
		nullString(v.VIN), nullString(v.MakeModel), nullString(v.CurrentOwner),
		nullString(v.ContactNumber), nullString(v.PhotoPath), v.IsArchived, v.ID,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("vehículo %d", v.ID)
	}
	return nil
}

// List lista vehículos por placa; los archivados solo si includeArchived.
func (r *VehicleRepo) List(ctx context.Context, includeArchived bool, limit, offset int) ([]*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	if !includeArchived {
		query += ` WHERE is_archived = ?`
	}
	query += ` ORDER BY license_plate LIMIT ? OFFSET ?`
	args := []any{limit, offset}
	if !includeArchived {
		args = append([]any{false}, args...)
	}
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// DistinctOwners devuelve los propietarios distintos (sugerencias).
func (r *VehicleRepo) DistinctOwners(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "current_owner")
}

// DistinctModels devuelve las marcas/modelos distintos (sugerencias).
func (r *VehicleRepo) DistinctModels(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "make_model")
}

// distinct recibe solo nombres de columna fijos del paquete.
func (r *VehicleRepo) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := r.query(ctx, fmt.Sprintf(
		`SELECT DISTINCT %[1]s FROM vehicles WHERE %[1]s IS NOT NULL AND %[1]s <> '' ORDER BY %[1]s`, column))
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	values, err := scanStrings(rows)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", column, err)
	}
	return values, nil
}

func scanVehicle(s rowScanner) (*entity.Vehicle, error) {
	var v entity.Vehicle
	if err := s.Scan(&v.ID, &v.LicensePlate, &v.VIN, &v.MakeModel, &v.CurrentOwner,
		&v.ContactNumber, &v.PhotoPath, &v.IsArchived); err != nil {
		return nil, err
	}
	return &v, nil
}
