package utils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "info", want: zerolog.InfoLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "bogus", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(LoggerOptions{Level: tt.level, Format: "json"})
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNewLogger_VerboseOverridesLevel(t *testing.T) {
	logger := NewLogger(LoggerOptions{Level: "error", Format: "json", Verbose: true})
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: "info", Format: "json", Output: &buf})

	logger.WithComponent("gitx").Info().Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"component":"gitx"`)
	assert.Contains(t, out, `"message":"hello"`)
}

func TestLogger_WithTask(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: "info", Format: "json", Output: &buf})

	logger.WithTask("improvements").Info().Msg("run")
	assert.Contains(t, buf.String(), `"task":"improvements"`)
}
