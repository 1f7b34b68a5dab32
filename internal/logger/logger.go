package logger

import (
	"github.com/learnhub/learnhub/internal/config"
	"github.com/learnhub/learnhub/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger to provide logging functionality
type Logger struct {
	*zap.SugaredLogger
}

// Global logger for convenience in scripts and one-off helpers. Everywhere
// else the logger should come in through dependency injection.
var L *Logger

// NewLogger creates a Logger honouring the configured level.
func NewLogger(cfg *config.Configuration) (*Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Logging.Level))

	if cfg.Deployment.Mode == types.ModeLocal {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		SugaredLogger: zapLogger.Sugar(),
	}, nil
}

func parseLevel(level types.LogLevel) zapcore.Level {
	switch level {
	case types.LogLevelDebug:
		return zapcore.DebugLevel
	case types.LogLevelWarn:
		return zapcore.WarnLevel
	case types.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func init() {
	L, _ = NewLogger(config.GetDefaultConfig())
}

func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...)}
}
