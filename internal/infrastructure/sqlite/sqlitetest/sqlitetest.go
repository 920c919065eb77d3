// Package sqlitetest abre bases SQLite temporarias para pruebas de repositorios y casos de uso.
package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlstore"
)

// NewStore crea un archivo de base de datos en t.TempDir() con el esquema aplicado.
// El handle se cierra al terminar la prueba.
func NewStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "workshop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlstore.New(db, sqlite.Dialect{})
}
