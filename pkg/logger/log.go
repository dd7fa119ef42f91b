package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"repair-system/pkg/config"
)

// Loggers - именованные логгеры по областям.
type Loggers struct {
	Main       *zap.Logger
	Auth       *zap.Logger
	Repair     *zap.Logger
	Assignment *zap.Logger
	Software   *zap.Logger
	Report     *zap.Logger
}

func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("неверный уровень логирования %q: %w", cfg.Level, err)
	}

	encoding := "console"
	if cfg.Format == "json" {
		encoding = "json"
	}

	outputs := []string{"stdout"}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию для логов: %w", err)
		}
		outputs = append(outputs, cfg.File)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	dualConfig := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderCfg,
	}

	return dualConfig.Build()
}

// NewLoggers создает набор логгеров от одного корневого.
func NewLoggers(root *zap.Logger) *Loggers {
	return &Loggers{
		Main:       root,
		Auth:       root.Named("auth"),
		Repair:     root.Named("repair"),
		Assignment: root.Named("assignment"),
		Software:   root.Named("software"),
		Report:     root.Named("report"),
	}
}
