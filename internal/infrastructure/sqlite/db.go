package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
)

// DriverName es el nombre con el que go-sqlite3 se registra en database/sql.
const DriverName = "sqlite3"

// Open abre (o crea) el archivo de base de datos del taller, aplica el esquema y devuelve el handle.
// Claves foráneas activas, journal WAL y BEGIN IMMEDIATE en toda transacción: un escritor a la vez,
// los demás esperan hasta busy_timeout.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite: ruta de base de datos vacía")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de datos: %w", err)
		}
	}

	db, err := sql.Open(DriverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// DSN construye la cadena de conexión de go-sqlite3 para un archivo.
func DSN(path string) string {
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", "5000")
	q.Set("_journal_mode", "WAL")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// Migrate aplica el esquema de forma idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}

// Dialect implementa sqlstore.Dialect para SQLite.
type Dialect struct{}

func (Dialect) Name() string { return "sqlite" }

// Rebind no modifica la consulta: SQLite acepta "?".
func (Dialect) Rebind(query string) string { return query }

// LockClause es vacío: BEGIN IMMEDIATE ya reserva el lock de escritura de toda la base.
func (Dialect) LockClause() string { return "" }

// IsUniqueViolation verifica si un error es una violación de UNIQUE o PRIMARY KEY.
func (Dialect) IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
