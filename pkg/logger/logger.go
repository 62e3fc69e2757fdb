package logger

import (
	"fmt"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debugf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
}

func New(cfg config.Logger) (Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse level error: %w", err)
	}

	output := cfg.Output
	if len(output) == 0 {
		output = []string{"stdout"}
	}

	errOutput := cfg.ErrOutput
	if len(errOutput) == 0 {
		errOutput = []string{"stderr"}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	zcfg := zap.Config{ //nolint:exhaustruct
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "json",
		EncoderConfig:    encCfg,
		OutputPaths:      output,
		ErrorOutputPaths: errOutput,
	}

	l, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger error: %w", err)
	}

	return l.Sugar(), nil
}
