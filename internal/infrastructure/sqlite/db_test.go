package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlite"
)

func TestOpen_AplicaEsquemaIdempotente(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "workshop.db")

	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(ctx, db))
	require.NoError(t, db.Close())

	// Reabrir sobre el mismo archivo no falla.
	db, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{
		"vehicles", "users", "inventory", "jobs", "job_tasks", "job_parts",
		"ownership_history", "job_images", "labor_charges", "stock_movements",
	} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpen_ClavesForaneasActivas(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "workshop.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO jobs (vehicle_id, status, created_at) VALUES (?, 'pending', CURRENT_TIMESTAMP)`, 999)
	require.Error(t, err)
}

func TestDialect_IsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "workshop.db"))
	require.NoError(t, err)
	defer db.Close()

	insert := `INSERT INTO inventory (part_number, part_name, avg_cost) VALUES (?, ?, ?)`
	_, err = db.ExecContext(ctx, insert, "PG-001", "Filtro", decimal.RequireFromString("9.50"))
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, insert, "PG-001", "Filtro", decimal.RequireFromString("9.50"))
	require.Error(t, err)

	d := sqlite.Dialect{}
	assert.True(t, d.IsUniqueViolation(err))
	assert.False(t, d.IsUniqueViolation(assert.AnError))
}

func TestDialect_SinReescritura(t *testing.T) {
	d := sqlite.Dialect{}
	assert.Equal(t, "sqlite", d.Name())
	assert.Equal(t, "SELECT * FROM inventory WHERE part_id = ?", d.Rebind("SELECT * FROM inventory WHERE part_id = ?"))
	assert.Empty(t, d.LockClause())
}

func TestDSN(t *testing.T) {
	dsn := sqlite.DSN("/tmp/workshop.db")
	assert.Contains(t, dsn, "file:/tmp/workshop.db?")
	assert.Contains(t, dsn, "_foreign_keys=on")
	assert.Contains(t, dsn, "_txlock=immediate")
	assert.Contains(t, dsn, "_busy_timeout=5000")
}
