// Package gateway expone consultas y comandos SQL parametrizados a la interfaz de escritorio.
// Solo valida la forma de la entrada; no es una frontera de seguridad.
package gateway

import (
	"context"
	"strings"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// Executor ejecuta SQL contra el almacenamiento.
type Executor interface {
	Query(ctx context.Context, query string, params []any) ([]map[string]any, error)
	Exec(ctx context.Context, query string, params []any) (id, changes int64, err error)
}

// forbiddenTokens son marcadores de comentario SQL rechazados en la entrada.
var forbiddenTokens = []string{"--", "/*", "*/"}

// UseCase valida y despacha consultas y comandos.
type UseCase struct {
	exec Executor
	log  *logger.Logger
}

// NewUseCase construye el gateway.
func NewUseCase(exec Executor, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{exec: exec, log: log}
}

// Query ejecuta una lectura y devuelve las filas como mapas columna -> valor.
func (uc *UseCase) Query(ctx context.Context, in dto.GatewayRequest) ([]map[string]any, error) {
	params, err := validate(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.exec.Query(ctx, in.SQL, params)
	if err != nil {
		uc.log.Error().Err(err).Msg("gateway: error en consulta")
		return nil, domain.Storage("query", err)
	}
	return rows, nil
}

// Command ejecuta una escritura y devuelve el último id insertado y las filas afectadas.
func (uc *UseCase) Command(ctx context.Context, in dto.GatewayRequest) (*dto.CommandResponse, error) {
	params, err := validate(in)
	if err != nil {
		return nil, err
	}
	id, changes, err := uc.exec.Exec(ctx, in.SQL, params)
	if err != nil {
		uc.log.Error().Err(err).Msg("gateway: error en comando")
		return nil, domain.Storage("command", err)
	}
	return &dto.CommandResponse{ID: id, Changes: changes}, nil
}

func validate(in dto.GatewayRequest) ([]any, error) {
	if strings.TrimSpace(in.SQL) == "" {
		return nil, domain.InvalidInputf("sql vacío")
	}
	for _, tok := range forbiddenTokens {
		if strings.Contains(in.SQL, tok) {
			return nil, domain.InvalidInputf("el sql no puede contener %q", tok)
		}
	}
	if in.Params == nil {
		return []any{}, nil
	}
	return in.Params, nil
}
