// Package logging builds the zap logger used by the CLI.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration.
type Config struct {
	Level       string // debug, info, warn, error
	Development bool   // console encoding instead of JSON
	OutputPaths []string
	Writer      io.Writer // overrides OutputPaths when set
}

// New creates a sugared logger. Unknown levels fall back to warn.
// Output goes to stderr unless OutputPaths says otherwise, keeping stdout
// free for command results.
func New(cfg Config) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}

	var config zap.Config
	if cfg.Development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.Sampling = nil
	}

	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	if len(cfg.OutputPaths) > 0 {
		config.OutputPaths = cfg.OutputPaths
	}

	if cfg.Writer != nil {
		var enc zapcore.Encoder
		if cfg.Development {
			enc = zapcore.NewConsoleEncoder(config.EncoderConfig)
		} else {
			enc = zapcore.NewJSONEncoder(config.EncoderConfig)
		}
		core := zapcore.NewCore(enc, zapcore.AddSync(cfg.Writer), config.Level)
		return zap.New(core).Sugar(), nil
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
