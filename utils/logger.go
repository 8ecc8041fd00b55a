package utils

import (
	"log"
	"sync"

	"sparklewash/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

func buildLogger() *zap.Logger {
	var cfg zap.Config
	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	built, err := cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return built
}

// GetLogger returns the shared logger, building it on first use.
func GetLogger() *zap.Logger {
	loggerOnce.Do(func() {
		logger = buildLogger()
	})
	return logger
}
