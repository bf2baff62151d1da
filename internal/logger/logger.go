// Package logger builds the zap logger shared by every conadmin component.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a logger at level ("debug", "info", "warn", "error";
// anything else is info). format "console" gives human-readable development
// output, any other value JSON on stdout with an ISO8601 timestamp field.
// serviceName and the host name are attached to every entry.
func NewLogger(level string, format string, serviceName string) (*zap.Logger, error) {
	cfg := configFor(format)
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.With(fields(serviceName)...), nil
}

func configFor(format string) zap.Config {
	if format == "console" {
		return zap.NewDevelopmentConfig()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg
}

func fields(serviceName string) []zap.Field {
	var out []zap.Field
	if serviceName != "" {
		out = append(out, zap.String("service_name", serviceName))
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		out = append(out, zap.String("hostname", host))
	}
	return out
}

// ParseLevel maps a level name to zap, falling back to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
