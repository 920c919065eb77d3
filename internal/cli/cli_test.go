package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/bootstrap"
	"github.com/jhoicas/Taller-api/internal/cli"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

type cliFixture struct {
	cfg  *config.Config
	open cli.Opener
}

func newCLI(t *testing.T) *cliFixture {
	t.Helper()
	color.NoColor = true
	cfg := &config.Config{
		DB:       config.DBConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "workshop.db")},
		JWT:      config.JWTConfig{Secret: "secret", Expiration: 60, Issuer: "taller-test"},
		Workshop: config.WorkshopConfig{Name: "Taller", Region: "LK"},
	}
	open := func(ctx context.Context) (*bootstrap.App, error) {
		return bootstrap.New(ctx, cfg, logger.Nop(), auth.WithBcryptCost(bcrypt.MinCost))
	}
	return &cliFixture{cfg: cfg, open: open}
}

func (f *cliFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmd(f.open)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// seedJob crea un vehículo y un trabajo directamente con los casos de uso.
func (f *cliFixture) seedJob(t *testing.T, mileageIn int64) int64 {
	t.Helper()
	ctx := context.Background()
	app, err := f.open(ctx)
	require.NoError(t, err)
	defer app.Close()

	v, _, err := app.Vehicles.Register(ctx, dto.RegisterVehicleRequest{LicensePlate: "CAB-1234", MakeModel: "Peugeot 208"})
	require.NoError(t, err)
	job, err := app.Jobs.CreateJob(ctx, dto.CreateJobRequest{VehicleID: v.ID, MileageIn: &mileageIn})
	require.NoError(t, err)
	return job.ID
}

func TestMigrateYSeed(t *testing.T) {
	f := newCLI(t)

	out, err := f.run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "esquema aplicado (sqlite)")

	out, err = f.run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "técnico por defecto creado")

	out, err = f.run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nada que sembrar")
}

func TestStock_RecepcionConsumoYFaltante(t *testing.T) {
	f := newCLI(t)

	out, err := f.run(t, "stock", "receive", "--part-number", "P001", "--qty", "10", "--cost", "8", "--retail", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "parte P001 creada (id 1): cantidad 10, costo promedio 8.00")

	out, err = f.run(t, "stock", "receive", "--part-number", "P001", "--qty", "5", "--cost", "11")
	require.NoError(t, err)
	assert.Contains(t, out, "cantidad 15, costo promedio 9.00")

	out, err = f.run(t, "stock", "consume", "--part-id", "1", "--qty", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "quedan 11")

	_, err = f.run(t, "stock", "consume", "--part-id", "1", "--qty", "12")
	require.Error(t, err)
	assert.Equal(t, "INSUFFICIENT_STOCK", cli.ErrorCode(err))

	_, err = f.run(t, "stock", "receive", "--part-number", "P001", "--qty", "1", "--cost", "abc")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION", cli.ErrorCode(err))

	_, err = f.run(t, "stock", "consume", "--part-id", "99", "--qty", "1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", cli.ErrorCode(err))
}

func TestParts_BajoMinimoYValorizacion(t *testing.T) {
	f := newCLI(t)

	out, err := f.run(t, "parts", "low")
	require.NoError(t, err)
	assert.Contains(t, out, "sin partes bajo el mínimo")

	_, err = f.run(t, "stock", "receive", "--part-number", "FIL-01", "--qty", "2", "--cost", "4.5")
	require.NoError(t, err)

	out, err = f.run(t, "parts", "low")
	require.NoError(t, err)
	assert.Contains(t, out, "FIL-01")

	xlsx := filepath.Join(t.TempDir(), "valor.xlsx")
	out, err = f.run(t, "parts", "valuation", "--out", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "unidades: 2  costo: 9.00")
	info, err := os.Stat(xlsx)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestJob_EstadoParteManoDeObraYFactura(t *testing.T) {
	f := newCLI(t)
	_, err := f.run(t, "seed")
	require.NoError(t, err)
	_, err = f.run(t, "stock", "receive", "--part-number", "BUJ-1", "--qty", "3", "--cost", "5", "--retail", "9")
	require.NoError(t, err)
	jobID := f.seedJob(t, 1000)
	id := "1"
	require.Equal(t, int64(1), jobID)

	out, err := f.run(t, "job", "add-part", id, "--part-id", "1", "--qty", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "precio 9.00, costo 5.00, quedan 1")

	out, err = f.run(t, "job", "labor", id, "--tech", "1", "--hours", "1.5", "--rate", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "total 30.00")

	_, err = f.run(t, "job", "labor", id, "--tech", "1", "--hours", "25", "--rate", "20")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION", cli.ErrorCode(err))

	_, err = f.run(t, "job", "status", id, "waiting")
	require.Error(t, err)
	assert.Equal(t, "INVALID_TRANSITION", cli.ErrorCode(err))

	_, err = f.run(t, "job", "status", id, "completed", "--mileage-out", "999")
	require.Error(t, err)
	assert.Equal(t, "INVALID_MILEAGE", cli.ErrorCode(err))

	out, err = f.run(t, "job", "status", id, "completed", "--mileage-out", "1200")
	require.NoError(t, err)
	assert.Contains(t, out, "trabajo 1: pending -> completed")

	pdfPath := filepath.Join(t.TempDir(), "factura.pdf")
	out, err = f.run(t, "job", "invoice", id, "--out", pdfPath)
	require.NoError(t, err)
	assert.Contains(t, out, "factura INV-")
	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))

	out, err = f.run(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "completados en el mes: 1")
	assert.Contains(t, out, "inventario: 1 partes, 1 unidades")

	_, err = f.run(t, "job", "status", "abc", "completed")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION", cli.ErrorCode(err))
}
