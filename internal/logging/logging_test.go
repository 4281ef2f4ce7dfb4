package logging

import (
	"testing"

	"github.com/novetrasys/npad/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	logger, err := New("debug", "json")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New("warn", "console")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = New("info", "xml")
	assert.Error(t, err)

	_, err = New("loud", "json")
	assert.Error(t, err)
}

func TestCalculationLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	var l calculation.Logger = NewCalculationLogger(zap.New(core))
	l.Debugf("case %s", "Small Case")
	l.Warnf("rejected %d", 1)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "case Small Case", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "engine", entries[1].LoggerName)

	// nil logger is safe
	NewCalculationLogger(nil).Errorf("ignored")
}
