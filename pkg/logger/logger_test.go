package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/flowboard-api/pkg/logger"
)

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.FromZerolog(zerolog.New(&buf)).Component("board")
	l.Error().Str("lead_id", "L1").Msg("falló")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "board", line["component"])
	assert.Equal(t, "L1", line["lead_id"])
	assert.Equal(t, "error", line["level"])
}

func TestNop_NoEscribe(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Info().Msg("nada") })
}

func TestNewWithWriter_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "WARN")
	l.Info().Msg("oculto")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
