package sl_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/research-assistant/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := sl.Err(nil)
		assert.Equal(t, "<nil>", attr.Value.String())
	})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, sl.ParseLevel(in), in)
	}
}

func TestNew_JSONOutsideLocal(t *testing.T) {
	var buf bytes.Buffer
	log := sl.New("prod", "info", &buf)

	log.Info("hello", slog.String("op", "test"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "test", record["op"])
}

func TestNew_TextForLocalRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := sl.New("local", "warn", &buf)

	log.Info("skipped")
	log.Warn("kept")

	assert.NotContains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), "msg=kept")
}
