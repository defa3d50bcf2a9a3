package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-print/pkg/logger"
)

func TestLogger_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf}).Component("raster")
	log.Info().Int("page", 2).Msg("página rasterizada")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "raster", entry["component"])
	assert.Equal(t, "página rasterizada", entry["message"])
	assert.EqualValues(t, 2, entry["page"])
}

func TestLogger_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})
	log.Info().Msg("oculto")
	assert.Empty(t, buf.String())
	log.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestLogger_NivelDesconocidoEsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "ruidoso", Out: &buf})
	log.Debug().Msg("oculto")
	log.Info().Msg("visible")
	assert.NotContains(t, buf.String(), "oculto")
	assert.Contains(t, buf.String(), "visible")
}
