package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/vehicle"
	"github.com/jhoicas/Taller-api/internal/application/workshop"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// Ensure TxRunner implements los puertos transaccionales de los casos de uso.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ workshop.TxRunner = (*TxRunner)(nil)
var _ vehicle.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción de base de datos.
// En SQLite la transacción abre con BEGIN IMMEDIATE (ver sqlite.Open), de modo que cada
// callback es una lectura-modificación-escritura atómica frente a otros escritores.
type TxRunner struct {
	db *sql.DB
	d  Dialect
}

// NewTxRunner construye el runner con el handle de base de datos.
func NewTxRunner(db *sql.DB, d Dialect) *TxRunner {
	return &TxRunner{db: db, d: d}
}

func (r *TxRunner) within(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run inicia una transacción, ejecuta fn con repos de inventario atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	parts repository.PartRepository,
	movements repository.StockMovementRepository,
) error) error {
	return r.within(ctx, func(tx *sql.Tx) error {
		return fn(NewPartRepository(tx, r.d), NewStockMovementRepository(tx, r.d))
	})
}

// RunWorkshop inicia una transacción con repos de trabajos e inventario (AddJobPart, cambios de estado).
func (r *TxRunner) RunWorkshop(ctx context.Context, fn func(
	jobs repository.JobRepository,
	jobParts repository.JobPartRepository,
	labor repository.LaborChargeRepository,
	parts repository.PartRepository,
	movements repository.StockMovementRepository,
) error) error {
	return r.within(ctx, func(tx *sql.Tx) error {
		return fn(
			NewJobRepository(tx, r.d),
			NewJobPartRepository(tx, r.d),
			NewLaborChargeRepository(tx, r.d),
			NewPartRepository(tx, r.d),
			NewStockMovementRepository(tx, r.d),
		)
	})
}

// RunVehicle inicia una transacción con repos de vehículos e historial de propietarios (traspasos).
func (r *TxRunner) RunVehicle(ctx context.Context, fn func(
	vehicles repository.VehicleRepository,
	history repository.OwnershipHistoryRepository,
) error) error {
	return r.within(ctx, func(tx *sql.Tx) error {
		return fn(NewVehicleRepository(tx, r.d), NewOwnershipHistoryRepository(tx, r.d))
	})
}
