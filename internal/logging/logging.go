package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a level name to a zap level. An empty name means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// New builds a zap logger writing to stderr. Format is "console" or "json";
// an empty format means console.
func New(level, format string) (*zap.Logger, error) {
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var config zap.Config
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console":
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case "json":
		config = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// CalculationLogger adapts a zap logger to the engine's printf-style Logger.
type CalculationLogger struct {
	sugar *zap.SugaredLogger
}

// NewCalculationLogger wraps logger. A nil logger discards everything.
func NewCalculationLogger(logger *zap.Logger) *CalculationLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculationLogger{sugar: logger.Named("engine").Sugar()}
}

func (l *CalculationLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *CalculationLogger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *CalculationLogger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *CalculationLogger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}
