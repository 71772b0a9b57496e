package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitToWritesServiceField(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })
	var buf bytes.Buffer

	InitTo(&buf, "nmalls-test", false)
	SetLevel("info")
	Logger.Info().Str("path", "/api/clientes").Msg("request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "nmalls-test", entry["service"])
	assert.Equal(t, "/api/clientes", entry["path"])
	assert.Equal(t, "request", entry["message"])
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	tests := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		"warn":     zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"":         zerolog.InfoLevel,
		"verbose":  zerolog.InfoLevel,
	}
	for name, want := range tests {
		SetLevel(name)
		assert.Equal(t, want, zerolog.GlobalLevel(), name)
	}

	var buf bytes.Buffer
	InitTo(&buf, "nmalls-test", false)
	SetLevel("error")
	Logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())
}
