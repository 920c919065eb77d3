package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/pkg/logger"
)

func TestNamed_AgregaComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.FromWriter(&buf).Named("ledger")
	log.Info().Int("qty", 3).Msg("recepción de stock")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ledger", line["component"])
	assert.Equal(t, "recepción de stock", line["message"])
	assert.EqualValues(t, 3, line["qty"])
}

func TestNew_NivelDesconocidoCaeEnInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "verboso", Out: &buf})
	log.Debug().Msg("oculto")
	log.Info().Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "oculto")
	assert.Contains(t, out, "visible")
}

func TestNew_NivelWarnFiltraInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "warn", Out: &buf})
	log.Info().Msg("info")
	log.Warn().Msg("aviso")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "aviso")
}
