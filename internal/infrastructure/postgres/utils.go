package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlstore"
)

// Dialect implementa sqlstore.Dialect para PostgreSQL.
type Dialect struct{}

func (Dialect) Name() string { return "postgres" }

// Rebind reescribe los marcadores "?" como $1, $2, ...
func (Dialect) Rebind(query string) string { return sqlstore.RebindDollar(query) }

func (Dialect) LockClause() string { return "FOR UPDATE" }

// IsUniqueViolation verifica si un error es una violación de constraint único (23505).
func (Dialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
