package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf, zerolog.DebugLevel)
	t.Cleanup(func() { SetOutput(os.Stderr, zerolog.DebugLevel) })
	return buf
}

func TestInfoWritesStructuredFields(t *testing.T) {
	buf := captureLogs(t)

	Info("date plan served", Fields{"vibe": "Lazy", "source": "fallback"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "date plan served", entry["message"])
	assert.Equal(t, "Lazy", entry["vibe"])
	assert.Equal(t, "fallback", entry["source"])
}

func TestErrorIncludesCause(t *testing.T) {
	buf := captureLogs(t)

	Error("status save failed", errors.New("disk full"), Fields{"feature": "dashboard"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "disk full", entry["error"])
}

func TestSetOutputRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf, zerolog.WarnLevel)
	t.Cleanup(func() { SetOutput(os.Stderr, zerolog.DebugLevel) })

	Debug("hidden", nil)
	Info("hidden too", nil)
	assert.Zero(t, buf.Len())

	Warn("shown", nil)
	assert.Contains(t, buf.String(), "shown")
}
