package shardgrid

import (
	"github.com/arloliu/shardgrid/internal/logging"
	"github.com/arloliu/shardgrid/internal/metrics"
	"github.com/arloliu/shardgrid/types"
)

// RegistryConfig holds configuration for a Registry.
type RegistryConfig struct {
	Resolver types.MembershipResolver
	Metrics  types.MetricsCollector
	Logger   types.Logger
}

// DefaultConfig returns a RegistryConfig with sensible defaults.
//
// Defaults:
//   - Resolver: a resolver that knows no sets (ContainsNode soft-fails)
//   - Metrics: no-op collector
//   - Logger: no-op logger
//
// Returns:
//   - *RegistryConfig: Configuration with default settings
func DefaultConfig() *RegistryConfig {
	return &RegistryConfig{
		Resolver: nopResolver{},
		Metrics:  metrics.NewNopMetrics(),
		Logger:   logging.NewNopLogger(),
	}
}

// Option configures a RegistryConfig.
type Option func(*RegistryConfig)

// WithResolver sets the replica set membership resolver.
//
// The resolver is consulted by ContainsNode checks for replica set shards.
// If not set, membership queries soft-fail (treated as "not a member").
//
// Parameters:
//   - resolver: The membership resolver implementation
//
// Returns:
//   - Option: Configuration option
func WithResolver(resolver types.MembershipResolver) Option {
	return func(c *RegistryConfig) {
		c.Resolver = resolver
	}
}

// WithMetrics sets the metrics collector.
//
// If not set, a no-op collector is used that discards all metrics.
// Use contrib/metrics/vm.New() for VictoriaMetrics integration.
//
// Parameters:
//   - collector: The metrics collector implementation
//
// Returns:
//   - Option: Configuration option
func WithMetrics(collector types.MetricsCollector) Option {
	return func(c *RegistryConfig) {
		c.Metrics = collector
	}
}

// WithLogger sets the structured logger.
//
// If not set, a no-op logger is used that discards all messages.
// The logger interface is compatible with zap.SugaredLogger via
// contrib/logging/zap.
//
// Parameters:
//   - logger: The logger implementation
//
// Returns:
//   - Option: Configuration option
func WithLogger(logger types.Logger) Option {
	return func(c *RegistryConfig) {
		c.Logger = logger
	}
}

// nopResolver is the default resolver that knows no replica sets.
type nopResolver struct{}

func (nopResolver) Resolve(_ string) (types.Membership, bool) {
	return nil, false
}
