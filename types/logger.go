package types

// Logger defines the structured logging methods used across shardgrid.
//
// Messages carry alternating key/value pairs, following the style of
// zap.SugaredLogger. Use contrib/logging/zap to adapt a SugaredLogger,
// or provide any implementation of this interface.
//
// Implementations must be safe for concurrent use.
type Logger interface {
	// Debug logs a message at debug level with key/value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs a message at info level with key/value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a message at warn level with key/value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs a message at error level with key/value pairs.
	Error(msg string, keysAndValues ...any)
}
