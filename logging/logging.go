// Package logging builds the zap loggers shared by the engine, the bridge and the CLI.
package logging

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config describes how a logger is built.
type Config struct {
	Level       string   `yaml:"level"`
	Encoding    string   `yaml:"encoding"`
	OutputPaths []string `yaml:"output_paths"`
	// Source is attached to every entry as the "source" field when set.
	Source string `yaml:"source"`
}

// DefaultConfig logs debug and above to stderr in console encoding.
func DefaultConfig() Config {
	return Config{
		Level:       "debug",
		Encoding:    "console",
		OutputPaths: []string{"stderr"},
	}
}

// New builds a logger from cfg. Empty fields fall back to DefaultConfig.
func New(cfg Config) (*zap.Logger, error) {
	def := DefaultConfig()
	if cfg.Level == "" {
		cfg.Level = def.Level
	}
	if cfg.Encoding == "" {
		cfg.Encoding = def.Encoding
	}
	if len(cfg.OutputPaths) == 0 {
		cfg.OutputPaths = def.OutputPaths
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         cfg.Encoding,
		OutputPaths:      cfg.OutputPaths,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			MessageKey:     "message",
			LevelKey:       "level",
			NameKey:        "logger",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	if cfg.Source != "" {
		logger = logger.With(zap.String("source", cfg.Source))
	}
	return logger, nil
}

// ParseLevel converts a level name to a zap level. "warning" is accepted as "warn".
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "panic":
		return zapcore.PanicLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	}
	return zapcore.DebugLevel, errors.Errorf("unknown log level %q", s)
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
