package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, slog.LevelInfo, "json")

	logger.Debug("hidden")
	logger.Info("order paid", "order_id", "RB-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "order paid", entry["msg"])
	assert.Equal(t, "RB-1", entry["order_id"])
	assert.Equal(t, serviceName, entry["service"])
	assert.NotContains(t, entry, "source")
}

func TestNewLogger_JSONDebugTrimsSource(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, slog.LevelDebug, "json").Debug("cart loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	source := entry["source"].(map[string]any)
	assert.Equal(t, "cmd/slog_test.go", source["file"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, slog.LevelInfo, "text").Error("failed", "error", errors.New("boom"))

	assert.Contains(t, buf.String(), "failed")
	assert.Contains(t, buf.String(), "boom")
}

func TestRelativeSource(t *testing.T) {
	assert.Equal(t, "internal/checkout/confirm.go", relativeSource("/home/ci/src/storefront/internal/checkout/confirm.go"))
	assert.Equal(t, "service/service.go", relativeSource("/app/service/service.go"))
	assert.Equal(t, "main.go", relativeSource("main.go"))
}
