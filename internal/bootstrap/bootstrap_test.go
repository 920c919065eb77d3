package bootstrap_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/bootstrap"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DB:       config.DBConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "data", "workshop.db")},
		JWT:      config.JWTConfig{Secret: "secret", Expiration: 60, Issuer: "taller-test"},
		Workshop: config.WorkshopConfig{Name: "Taller", Region: "LK"},
	}
}

func TestNew_SQLiteConTecnicoPorDefecto(t *testing.T) {
	ctx := context.Background()
	app, err := bootstrap.New(ctx, testConfig(t), logger.Nop(), auth.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	created, err := app.Auth.EnsureDefaultTechnician(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = app.Auth.EnsureDefaultTechnician(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	login, err := app.Auth.TechLogin(ctx, dto.TechLoginRequest{PIN: auth.DefaultTechnicianPIN})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

func TestOpenStore_DriverDesconocido(t *testing.T) {
	_, _, err := bootstrap.OpenStore(context.Background(), config.DBConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}
