package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new logger with the given minimum log level and encoding.
// encoding must be either "console" or "json".
func NewLogger(level, encoding string) (*zap.Logger, error) {
	if encoding != "console" && encoding != "json" {
		return nil, fmt.Errorf("unknown log encoding %q", encoding)
	}

	logLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse log level: %w", err)
	}

	logConfig := zap.NewProductionConfig()
	logConfig.Level = zap.NewAtomicLevelAt(logLevel)
	logConfig.Encoding = encoding
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err := logConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("couldn't build logger: %w", err)
	}
	return logger, nil
}
