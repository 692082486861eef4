// Package Logger wraps zap's sugared logger in a single concrete type so
// call sites never depend on zap directly.
package Logger

import (
	"go.uber.org/zap"
)

type Logger struct {
	*zap.SugaredLogger
}

// New builds the process logger. Debug selects the human-readable console
// encoder; otherwise logs ship as production JSON.
func New(debug bool) *Logger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = "time"
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.Encoding = "json"
	}
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.CallerKey = "caller"

	zl, _ := cfg.Build(zap.AddCaller())
	return &Logger{zl.Sugar()}
}
