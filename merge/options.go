package merge

import (
	"log/slog"
	"runtime"
)

// Strategy selects how buckets are dispatched to workers.
type Strategy int

const (
	// StrategyStatic partitions buckets across workers by index.
	StrategyStatic Strategy = iota
	// StrategyPerSource runs one task per source with per-bucket locks.
	StrategyPerSource
)

func (s Strategy) String() string {
	switch s {
	case StrategyStatic:
		return "static"
	case StrategyPerSource:
		return "per-source"
	default:
		return "unknown"
	}
}

// Observer receives per-bucket progress. Implementations must be safe for
// concurrent use.
type Observer interface {
	RecordBucketMerge(bucket, novel int)
}

type noopObserver struct{}

func (noopObserver) RecordBucketMerge(int, int) {}

type options struct {
	workers     int
	strategy    Strategy
	memoryLimit int64
	capacity    int
	validate    bool
	logger      *slog.Logger
	observer    Observer
}

func defaultOptions() options {
	return options{
		workers:  runtime.GOMAXPROCS(0),
		strategy: StrategyStatic,
		logger:   slog.New(slog.DiscardHandler),
		observer: noopObserver{},
	}
}

// Option configures a Merger.
type Option func(*options)

// WithWorkers bounds the number of concurrently merging goroutines. Values
// below one select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithStrategy selects the dispatch strategy.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithMemoryLimit caps the bytes preallocated by concurrent runs of one
// Merger. Runs that would exceed it fail with ErrMemoryLimitExceeded.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithCapacity overrides the destination capacity, which defaults to the
// total number of source points. A smaller value saves memory when many
// points are known to coincide but fails with ErrCapacityExceeded if it is
// too small.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithValidation runs Verify on the result of every run.
func WithValidation(enabled bool) Option {
	return func(o *options) {
		o.validate = enabled
	}
}

// WithLogger sets the logger. Runs log at Info, workers at Debug.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver registers a per-bucket progress observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}
