package sqlstore

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Dialect aísla las diferencias entre motores (SQLite embebido y PostgreSQL).
// Las consultas del paquete se escriben con marcadores "?" y el dialecto los reescribe.
type Dialect interface {
	Name() string
	Rebind(query string) string
	// LockClause es el sufijo que bloquea las filas leídas dentro de una transacción
	// ("FOR UPDATE" en PostgreSQL; vacío en SQLite, donde BEGIN IMMEDIATE ya toma el lock de escritura).
	LockClause() string
	IsUniqueViolation(err error) bool
}

// Querier es la interfaz común de *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RebindDollar reescribe "?" como $1, $2, ... ignorando los "?" dentro de literales entre comillas simples.
func RebindDollar(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inString := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inString = !inString
			b.WriteByte(c)
		case c == '?' && !inString:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// conn agrupa el Querier (pool o tx) con el dialecto; lo embeben todos los repositorios.
type conn struct {
	q Querier
	d Dialect
}

func (c conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.q.ExecContext(ctx, c.d.Rebind(query), args...)
}

func (c conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.q.QueryContext(ctx, c.d.Rebind(query), args...)
}

func (c conn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return c.q.QueryRowContext(ctx, c.d.Rebind(query), args...)
}

// forUpdate agrega la cláusula de bloqueo del dialecto a una consulta SELECT.
func (c conn) forUpdate(query string) string {
	if lock := c.d.LockClause(); lock != "" {
		return query + " " + lock
	}
	return query
}

// insertReturningID ejecuta un INSERT ... RETURNING <col> y devuelve el id generado.
func (c conn) insertReturningID(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	if err := c.queryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// scanStrings lee una columna de texto de todas las filas.
func scanStrings(rows *sql.Rows) ([]string, error) {
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// nullString convierte "" en NULL para columnas opcionales.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
