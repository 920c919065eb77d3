package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlite/sqlitetest"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPartRepo_CrearYLeer(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)

	p := &entity.Part{PartNumber: "PG-1609", Name: "Filtro de aceite", Quantity: 10,
		AvgCost: dec("9.50"), RetailPrice: dec("15.00"), MinThreshold: 5, Category: "Filtros", Condition: "new"}
	require.NoError(t, s.Parts.Create(ctx, p))
	require.NotZero(t, p.ID)

	got, err := s.Parts.GetByNumber(ctx, "PG-1609")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, 10, got.Quantity)
	assert.True(t, got.AvgCost.Equal(dec("9.50")))
	assert.True(t, got.RetailPrice.Equal(dec("15")))

	missing, err := s.Parts.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = s.Parts.Create(ctx, &entity.Part{PartNumber: "PG-1609", Name: "dup"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPartRepo_CreateIfAbsentNoPisaExistente(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)

	first := &entity.Part{PartNumber: "PG-77", Name: "Bujía", Quantity: 3, AvgCost: dec("4.00"), Category: "Encendido"}
	created, err := s.Parts.CreateIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotZero(t, first.ID)

	second := &entity.Part{PartNumber: "PG-77", Name: "otra", Quantity: 99, AvgCost: dec("1.00")}
	created, err = s.Parts.CreateIfAbsent(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Zero(t, second.ID)

	got, err := s.Parts.GetByNumber(ctx, "PG-77")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, "Bujía", got.Name)
}

func TestPartRepo_UpdateStockYBajoUmbral(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)

	p := &entity.Part{PartNumber: "PG-1", Name: "Pastillas", Quantity: 10, MinThreshold: 4, Category: "Frenos"}
	require.NoError(t, s.Parts.Create(ctx, p))
	require.NoError(t, s.Parts.UpdateStock(ctx, p.ID, 4, dec("12.34")))

	low, err := s.Parts.ListBelowThreshold(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, 4, low[0].Quantity)
	assert.True(t, low[0].AvgCost.Equal(dec("12.34")))

	err = s.Parts.UpdateStock(ctx, 999, 1, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleRepo_PlacaUnicaYSugerencias(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)

	v := &entity.Vehicle{LicensePlate: "CAB-1234", MakeModel: "Peugeot 308", CurrentOwner: "Nimal Perera"}
	require.NoError(t, s.Vehicles.Create(ctx, v))
	require.NoError(t, s.Vehicles.Create(ctx, &entity.Vehicle{LicensePlate: "KX-9001", MakeModel: "Peugeot 3008", CurrentOwner: "Nimal Perera"}))

	err := s.Vehicles.Create(ctx, &entity.Vehicle{LicensePlate: "CAB-1234"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	owners, err := s.Vehicles.DistinctOwners(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nimal Perera"}, owners)

	models, err := s.Vehicles.DistinctModels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Peugeot 3008", "Peugeot 308"}, models)

	v.IsArchived = true
	require.NoError(t, s.Vehicles.Update(ctx, v))
	active, err := s.Vehicles.List(ctx, false, 50, 0)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "KX-9001", active[0].LicensePlate)

	all, err := s.Vehicles.List(ctx, true, 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestJobRepo_PropietarioHistoricoEnTablero(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)

	tech := &entity.User{FullName: "Head Tech", Role: entity.RoleTechnician, PinHash: "x"}
	require.NoError(t, s.Users.Create(ctx, tech))
	v := &entity.Vehicle{LicensePlate: "CAB-1", CurrentOwner: "Kamal", ContactNumber: "+94771234567"}
	require.NoError(t, s.Vehicles.Create(ctx, v))

	created := time.Now().UTC().Add(-time.Hour)
	j := &entity.Job{VehicleID: v.ID, TechnicianID: &tech.ID, CreatedAt: created}
	require.NoError(t, s.Jobs.Create(ctx, j))

	// Traspaso posterior a la creación del trabajo, sin foto de propietario en el trabajo.
	require.NoError(t, s.History.Append(ctx, &entity.OwnershipHistory{
		VehicleID: v.ID, OldOwner: "Kamal", NewOwner: "Sunil", TransferDate: created.Add(30 * time.Minute),
	}))
	v.CurrentOwner = "Sunil"
	require.NoError(t, s.Vehicles.Update(ctx, v))

	list, err := s.Jobs.ListActiveByTechnician(ctx, tech.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Kamal", list[0].OwnerName)
	assert.Equal(t, "+94771234567", list[0].ContactNumber)
	assert.Equal(t, "CAB-1", list[0].LicensePlate)
}

func TestJobRepo_UpdateStatusConservaKilometraje(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)

	v := &entity.Vehicle{LicensePlate: "CAB-2"}
	require.NoError(t, s.Vehicles.Create(ctx, v))
	in := int64(50000)
	j := &entity.Job{VehicleID: v.ID, MileageIn: &in}
	require.NoError(t, s.Jobs.Create(ctx, j))
	assert.Equal(t, entity.JobStatusPending, j.Status)

	out := int64(50120)
	now := time.Now().UTC()
	require.NoError(t, s.Jobs.UpdateStatus(ctx, j.ID, repository.StatusChange{
		Status: entity.JobStatusCompleted, MileageOut: &out, CompletionDate: &now,
	}))

	got, err := s.Jobs.GetByID(ctx, j.ID)
	require.NoError(t, err)
	require.NotNil(t, got.MileageOut)
	assert.Equal(t, int64(50120), *got.MileageOut)
	require.NotNil(t, got.CompletionDate)
	assert.Nil(t, got.TechnicianID)

	err = s.Jobs.UpdateStatus(ctx, 999, repository.StatusChange{Status: entity.JobStatusWaiting})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobTaskRepo_Ciclo(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)

	v := &entity.Vehicle{LicensePlate: "CAB-3"}
	require.NoError(t, s.Vehicles.Create(ctx, v))
	j := &entity.Job{VehicleID: v.ID}
	require.NoError(t, s.Jobs.Create(ctx, j))

	task := &entity.JobTask{JobID: j.ID, Description: "Cambiar aceite"}
	require.NoError(t, s.JobTasks.Create(ctx, task))
	require.NoError(t, s.JobTasks.SetCompleted(ctx, task.ID, true))

	got, err := s.JobTasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)

	require.NoError(t, s.JobTasks.Delete(ctx, task.ID))
	assert.ErrorIs(t, s.JobTasks.Delete(ctx, task.ID), domain.ErrNotFound)
}

func TestTxRunner_RollbackAnteError(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)

	p := &entity.Part{PartNumber: "PG-9", Name: "Bujía", Quantity: 3}
	require.NoError(t, s.Parts.Create(ctx, p))

	err := s.TxRunner.Run(ctx, func(parts repository.PartRepository, _ repository.StockMovementRepository) error {
		if err := parts.UpdateStock(ctx, p.ID, 0, decimal.Zero); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	got, err := s.Parts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
}

func TestGatewayExecutor_QueryYExec(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)

	id, changes, err := s.Gateway.Exec(ctx,
		`INSERT INTO vehicles (license_plate, make_model) VALUES (?, ?)`, []any{"CAB-77", "Peugeot 208"})
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, int64(1), changes)

	rows, err := s.Gateway.Query(ctx, `SELECT license_plate, make_model FROM vehicles WHERE vehicle_id = ?`, []any{id})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "CAB-77", rows[0]["license_plate"])
	assert.Equal(t, "Peugeot 208", rows[0]["make_model"])

	empty, err := s.Gateway.Query(ctx, `SELECT * FROM vehicles WHERE vehicle_id = ?`, []any{-1})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = s.Gateway.Query(ctx, `SELECT * FROM no_such_table`, nil)
	require.Error(t, err)
}
