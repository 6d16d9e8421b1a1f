package tensorenc

import (
	"log/slog"

	"github.com/hupe1980/tensorenc/frame"
	"github.com/hupe1980/tensorenc/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	controller       *resource.Controller
	compression      frame.Compression
}

// Option configures a Toolkit.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &tensorenc.BasicMetricsCollector{}
//	tk := tensorenc.New(tensorenc.WithMetricsCollector(metrics))
//	// ... use tk ...
//	stats := metrics.GetStats()
//	fmt.Printf("Transforms: %d, Avg latency: %dns\n", stats.TransformCount, stats.TransformAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := tensorenc.NewJSONLogger(slog.LevelDebug)
//	tk := tensorenc.New(tensorenc.WithLogger(logger))
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

// WithController bounds parallel transforms and frame writers.
// A nil controller imposes no limits.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithCompression sets the block compression used for frames.
// Defaults to frame.CompressionNone.
func WithCompression(c frame.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		compression:      frame.CompressionNone,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
