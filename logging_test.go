package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	log := NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf)
	log.Info().Msg("hidden")
	log.Warn().Str("kind", "planet").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"kind":"planet"`)
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestNewLoggerUnknownLevel(t *testing.T) {
	var buf bytes.Buffer

	log := NewLogger(LogConfig{Level: "loud"}, &buf)
	log.Debug().Msg("debug")
	log.Info().Msg("info")

	assert.NotContains(t, buf.String(), `"message":"debug"`)
	assert.Contains(t, buf.String(), `"message":"info"`)
}
