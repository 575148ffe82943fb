package pointmerge

import "github.com/hupe1980/pointmerge/merge"

// Strategy selects how buckets are dispatched to merge workers.
type Strategy = merge.Strategy

const (
	// StrategyStatic partitions buckets across workers by index.
	StrategyStatic = merge.StrategyStatic
	// StrategyPerSource runs one task per source with per-bucket locks.
	StrategyPerSource = merge.StrategyPerSource
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	workers          int
	strategy         Strategy
	memoryLimit      int64
	capacity         int
	validate         bool
}

// Option configures Merge.
type Option func(*options)

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. If nil is passed, metrics
// are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithWorkers bounds the number of concurrent merge workers. Values below
// one select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithStrategy selects the dispatch strategy. The default is
// StrategyStatic, which keeps every bucket on a single worker.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithMemoryLimit fails the merge with ErrMemoryLimitExceeded when the
// preallocated destination would need more than bytes.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithCapacity overrides the destination capacity, which defaults to the
// total number of source points.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithValidation checks the invariants of the merged locator before
// returning it.
func WithValidation(enabled bool) Option {
	return func(o *options) {
		o.validate = enabled
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		strategy:         StrategyStatic,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
