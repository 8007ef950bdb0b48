// Package zap adapts a zap.SugaredLogger to the types.Logger interface.
//
// # Usage
//
//	base, _ := zap.NewProduction()
//	logger := zaplog.New(base.Sugar())
//
//	reg := shardgrid.NewRegistry(source,
//	    shardgrid.WithLogger(logger),
//	)
package zap

import (
	"go.uber.org/zap"

	"github.com/arloliu/shardgrid/types"
)

// Logger wraps a zap.SugaredLogger as a types.Logger.
type Logger struct {
	sugar *zap.SugaredLogger
}

// Compile-time assertion that Logger implements types.Logger.
var _ types.Logger = (*Logger)(nil)

// New creates a types.Logger backed by the given SugaredLogger.
//
// Parameters:
//   - sugar: The sugared logger to delegate to; if nil, a no-op zap
//     logger is used
//
// Returns:
//   - *Logger: The adapted logger
func New(sugar *zap.SugaredLogger) *Logger {
	if sugar == nil {
		sugar = zap.NewNop().Sugar()
	}

	return &Logger{sugar: sugar}
}

// Debug logs a message at debug level with key/value pairs.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

// Info logs a message at info level with key/value pairs.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.sugar.Infow(msg, keysAndValues...)
}

// Warn logs a message at warn level with key/value pairs.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.sugar.Warnw(msg, keysAndValues...)
}

// Error logs a message at error level with key/value pairs.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, keysAndValues...)
}
