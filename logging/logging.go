package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. "debug" gives a coloured console logger,
// anything else the JSON production logger.
func New(mode string) (*zap.Logger, error) {
	var zapConfig zap.Config

	if mode == "debug" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		// Diagnostics go to stderr so they never mix with rendered tables.
		zapConfig.OutputPaths = []string{"stderr"}
	}
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapConfig.Build()
}
