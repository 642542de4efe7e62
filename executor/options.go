package executor

import "github.com/asyncring/asyncring/metrics"

// Config holds SingleThreadedExecutor's configuration, assembled from
// defaultConfig and any Options passed to New.
type Config struct {
	// Metrics receives the executor's instrument recordings. Defaults
	// to a no-op provider.
	Metrics metrics.Provider
}

// Option mutates a Config during New.
type Option func(*Config)

// WithMetrics wires a metrics provider into the executor, recording
// scheduling, suspension, abandonment, and poll-duration instruments
// under it.
func WithMetrics(p metrics.Provider) Option {
	return func(c *Config) { c.Metrics = p }
}

func defaultConfig() Config {
	return Config{Metrics: metrics.NewNoopProvider()}
}
