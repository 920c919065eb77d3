package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "workshop.db", cfg.DB.Path)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, "LK", cfg.Workshop.Region)
}

func TestFromViper_Postgres(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "Postgres")
	v.Set("DB_HOST", "db")
	v.Set("DB_PORT", "6543")
	v.Set("DB_USER", "taller")
	v.Set("DB_PASSWORD", "p@ss")
	v.Set("DB_NAME", "taller")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "postgres://taller:p%40ss@db:6543/taller?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "mysql")
	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestFromViper_PuertoNoNumericoUsaDefault(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "abc")
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.HTTP.Port)
}
