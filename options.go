package hnsw

import "log/slog"

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	trimConcurrency  int
}

// Option configures constructor behavior.
type Option func(*options)

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := hnsw.NewJSONLogger(slog.LevelInfo)
//	idx := hnsw.New(params, 0, 42, hnsw.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &hnsw.BasicMetricsCollector{}
//	idx := hnsw.New(params, 0, 42, hnsw.WithMetricsCollector(metrics))
//	// ... use idx ...
//	stats := metrics.GetStats()
//	fmt.Printf("Inserts: %d, Avg latency: %dns\n", stats.InsertCount, stats.InsertAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithTrimConcurrency bounds the number of goroutines that evaluate neighbor
// trims during a single insertion. Values below 1 fall back to GOMAXPROCS.
func WithTrimConcurrency(limit int) Option {
	return func(o *options) {
		o.trimConcurrency = limit
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
