package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmiteCampoService(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "fabrica-api-test", Output: &buf})

	l.Info().Msg("hola")

	require.Contains(t, buf.String(), `"service":"fabrica-api-test"`)
	assert.Contains(t, buf.String(), `"message":"hola"`)
}

func TestNew_ServiceVacioUsaElDefault(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Output: &buf})

	l.Info().Msg("hola")

	assert.Contains(t, buf.String(), `"service":"`+DefaultService+`"`)
}

func TestNew_RespetaElNivel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Output: &buf})

	l.Info().Msg("silenciado")
	l.Warn().Msg("visible")

	assert.NotContains(t, buf.String(), "silenciado")
	assert.Contains(t, buf.String(), "visible")
}

func TestParseLevel_DesconocidoCaeEnInfo(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}
