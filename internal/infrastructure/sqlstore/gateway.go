package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/application/gateway"
)

var _ gateway.Executor = (*GatewayExecutor)(nil)

// GatewayExecutor ejecuta SQL parametrizado enviado por la interfaz de escritorio.
type GatewayExecutor struct {
	conn
}

// NewGatewayExecutor construye el ejecutor sobre el pool.
func NewGatewayExecutor(db *sql.DB, d Dialect) *GatewayExecutor {
	return &GatewayExecutor{conn{q: db, d: d}}
}

// Query devuelve cada fila como un mapa columna -> valor. Los []byte se devuelven como string.
func (g *GatewayExecutor) Query(ctx context.Context, query string, params []any) ([]map[string]any, error) {
	rows, err := g.query(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	out := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Exec ejecuta un comando y devuelve el último id insertado y las filas afectadas.
// Con PostgreSQL el id es 0: el driver no expone LastInsertId (usar RETURNING con Query).
func (g *GatewayExecutor) Exec(ctx context.Context, query string, params []any) (int64, int64, error) {
	res, err := g.exec(ctx, query, params...)
	if err != nil {
		return 0, 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		id = 0
	}
	changes, err := res.RowsAffected()
	if err != nil {
		return id, 0, fmt.Errorf("rows affected: %w", err)
	}
	return id, changes, nil
}
