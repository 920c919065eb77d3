package gateway_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/gateway"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlite/sqlitetest"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

type recordingExecutor struct {
	params []any
	err    error
}

func (r *recordingExecutor) Query(_ context.Context, _ string, params []any) ([]map[string]any, error) {
	r.params = params
	return []map[string]any{}, r.err
}

func (r *recordingExecutor) Exec(_ context.Context, _ string, params []any) (int64, int64, error) {
	r.params = params
	return 0, 0, r.err
}

func TestGateway_RechazaComentarios(t *testing.T) {
	ctx := context.Background()
	exec := &recordingExecutor{}
	uc := gateway.NewUseCase(exec, logger.Nop())

	for _, q := range []string{
		"",
		"   ",
		"SELECT 1 -- x",
		"SELECT /* x */ 1",
		"SELECT 1 */",
	} {
		_, err := uc.Query(ctx, dto.GatewayRequest{SQL: q})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "sql %q", q)
		_, err = uc.Command(ctx, dto.GatewayRequest{SQL: q})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "sql %q", q)
	}
	assert.Nil(t, exec.params, "no debe llegar al motor")
}

func TestGateway_ParametrosPorDefecto(t *testing.T) {
	exec := &recordingExecutor{}
	uc := gateway.NewUseCase(exec, logger.Nop())

	_, err := uc.Query(context.Background(), dto.GatewayRequest{SQL: "SELECT 1"})
	require.NoError(t, err)
	assert.NotNil(t, exec.params)
	assert.Empty(t, exec.params)
}

func TestGateway_ErrorDelMotorEsStorage(t *testing.T) {
	engineErr := errors.New("no such table: nope")
	uc := gateway.NewUseCase(&recordingExecutor{err: engineErr}, logger.Nop())

	_, err := uc.Command(context.Background(), dto.GatewayRequest{SQL: "DELETE FROM nope"})
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, engineErr)
	assert.Contains(t, err.Error(), "no such table")
}

func TestGateway_ContraSQLite(t *testing.T) {
	ctx := context.Background()
	s := sqlitetest.NewStore(t)
	uc := gateway.NewUseCase(s.Gateway, logger.Nop())

	res, err := uc.Command(ctx, dto.GatewayRequest{
		SQL:    "INSERT INTO vehicles (license_plate, current_owner) VALUES (?, ?)",
		Params: []any{"GW-1", "Kamal"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Changes)
	assert.Positive(t, res.ID)

	rows, err := uc.Query(ctx, dto.GatewayRequest{SQL: "SELECT license_plate, current_owner FROM vehicles WHERE license_plate = ?", Params: []any{"GW-1"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Kamal", rows[0]["current_owner"])

	_, err = uc.Query(ctx, dto.GatewayRequest{SQL: "SELECT * FROM missing_table"})
	assert.ErrorIs(t, err, domain.ErrStorage)
}
