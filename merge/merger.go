package merge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/pointmerge/internal/resource"
	"github.com/hupe1980/pointmerge/locator"
)

// pointBytes is the footprint of one stored coordinate triple.
const pointBytes = 24

// Merger runs merges with a fixed configuration. It is safe for concurrent
// use; concurrent runs share the memory budget and worker slots.
type Merger struct {
	opts options
	rc   *resource.Controller
}

// New returns a Merger.
func New(optFns ...Option) *Merger {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Merger{
		opts: opts,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes: opts.memoryLimit,
			MaxWorkers:       int64(opts.workers),
		}),
	}
}

// Result describes a finished merge.
type Result struct {
	// Dst is the finalized destination.
	Dst *locator.Locator
	// Remaps holds one remap per source, in source order.
	Remaps []*locator.IDRemap
	// NewPoints is the number of distinct points in Dst.
	NewPoints int64
	// Duration is the wall time of the run.
	Duration time.Duration

	release func()
	once    sync.Once
}

// Release returns the memory reserved for the destination to the Merger's
// budget. It is safe to call more than once.
func (r *Result) Release() {
	if r == nil || r.release == nil {
		return
	}
	r.once.Do(r.release)
}

// MemoryUsage returns the bytes currently held by unreleased results.
func (m *Merger) MemoryUsage() int64 { return m.rc.MemoryUsage() }

// Run merges sources into dst. dst is reinitialized first; its grid and
// tolerance apply to the whole run and every source must share the grid.
// When ctx is canceled no further bucket merges start and ctx.Err() is
// returned. After an error dst is left in an unspecified merge state and must
// be reinitialized before reuse.
func (m *Merger) Run(ctx context.Context, dst *locator.Locator, sources []*locator.Locator) (*Result, error) {
	start := time.Now()
	log := m.opts.logger.With("sources", len(sources), "strategy", m.opts.strategy.String())

	res, err := m.run(ctx, dst, sources)
	if err != nil {
		log.ErrorContext(ctx, "merge failed", "error", err)
		return nil, err
	}
	res.Duration = time.Since(start)

	if m.opts.validate {
		if err := Verify(res, sources); err != nil {
			res.Release()
			log.ErrorContext(ctx, "merge validation failed", "error", err)
			return nil, err
		}
	}

	log.InfoContext(ctx, "merge completed",
		"points", res.NewPoints,
		"buckets", dst.NumBuckets(),
		"duration", res.Duration,
	)
	return res, nil
}

func (m *Merger) run(ctx context.Context, dst *locator.Locator, sources []*locator.Locator) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	capacity, err := prepare(dst, sources, m.opts.capacity)
	if err != nil {
		return nil, err
	}

	need := footprint(dst, capacity)
	if err := m.rc.AcquireMemory(need); err != nil {
		return nil, fmt.Errorf("%w: run needs %d bytes, %d of %d in use",
			err, need, m.rc.MemoryUsage(), m.rc.MemoryLimit())
	}

	res := begin(dst, sources, capacity)
	res.release = func() { m.rc.ReleaseMemory(need) }
	m.opts.logger.DebugContext(ctx, "destination reserved", "capacity", dst.Capacity(), "bytes", need)

	switch m.opts.strategy {
	case StrategyPerSource:
		err = m.runPerSource(ctx, dst, sources, res.Remaps)
	default:
		err = m.runStatic(ctx, dst, sources, res.Remaps)
	}
	if err != nil {
		res.Release()
		return nil, err
	}

	dst.FixSizeOfPointArray()
	res.NewPoints = dst.NumPoints()
	return res, nil
}

// runStatic assigns bucket b to worker b mod W.
func (m *Merger) runStatic(ctx context.Context, dst *locator.Locator, sources []*locator.Locator, remaps []*locator.IDRemap) error {
	numBuckets := dst.NumBuckets()
	workers := max(1, min(m.opts.workers, numBuckets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for w := range workers {
		g.Go(func() error {
			if err := m.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer m.rc.ReleaseWorker()

			merged := 0
			for b := w; b < numBuckets; b += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				before := dst.NumIDsInBucket(b)
				for i, src := range sources {
					if src.NumIDsInBucket(b) == 0 {
						continue
					}
					if err := dst.Merge(src, b, dst.Attributes(), src.Attributes(), remaps[i]); err != nil {
						return fmt.Errorf("source %d bucket %d: %w", i, b, err)
					}
				}
				if novel := dst.NumIDsInBucket(b) - before; novel > 0 {
					m.opts.observer.RecordBucketMerge(b, novel)
				}
				merged++
			}
			m.opts.logger.DebugContext(gctx, "merge worker finished", "worker", w, "buckets", merged)
			return nil
		})
	}
	return waitErr(ctx, g)
}

// runPerSource runs one task per source, serialized per bucket.
func (m *Merger) runPerSource(ctx context.Context, dst *locator.Locator, sources []*locator.Locator, remaps []*locator.IDRemap) error {
	numBuckets := dst.NumBuckets()
	locks := newBucketLocks(numBuckets)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, m.opts.workers))
	for i, src := range sources {
		g.Go(func() error {
			if err := m.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer m.rc.ReleaseWorker()

			for b := range numBuckets {
				if src.NumIDsInBucket(b) == 0 {
					continue
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				mu := locks.lock(b)
				before := dst.NumIDsInBucket(b)
				err := dst.Merge(src, b, dst.Attributes(), src.Attributes(), remaps[i])
				novel := dst.NumIDsInBucket(b) - before
				mu.Unlock()
				if err != nil {
					return fmt.Errorf("source %d bucket %d: %w", i, b, err)
				}
				if novel > 0 {
					m.opts.observer.RecordBucketMerge(b, novel)
				}
			}
			m.opts.logger.DebugContext(gctx, "merge task finished", "source", i, "points", src.NumPoints())
			return nil
		})
	}
	return waitErr(ctx, g)
}

// waitErr prefers the caller's cancellation over errors it caused in
// workers.
func waitErr(ctx context.Context, g *errgroup.Group) error {
	err := g.Wait()
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	return err
}

// prepare validates the inputs and returns the destination capacity.
func prepare(dst *locator.Locator, sources []*locator.Locator, capacity int) (int, error) {
	if dst == nil {
		return 0, fmt.Errorf("%w: destination", ErrNilLocator)
	}
	var total int64
	for i, src := range sources {
		if src == nil {
			return 0, fmt.Errorf("%w: source %d", ErrNilLocator, i)
		}
		if src == dst {
			return 0, fmt.Errorf("source %d: %w: destination cannot be a source", i, locator.ErrLayoutMismatch)
		}
		if !src.Grid().Equal(dst.Grid()) {
			return 0, fmt.Errorf("source %d: %w", i, locator.ErrLayoutMismatch)
		}
		if err := dst.Attributes().CheckCompatible(src.Attributes()); err != nil {
			return 0, fmt.Errorf("source %d: %w", i, err)
		}
		total += src.NumPoints()
	}
	if capacity <= 0 {
		capacity = int(total)
	}
	return capacity, nil
}

// begin resets and reserves dst and allocates the remaps.
func begin(dst *locator.Locator, sources []*locator.Locator, capacity int) *Result {
	dst.InitializeMerge()
	dst.Reserve(capacity)
	remaps := make([]*locator.IDRemap, len(sources))
	for i, src := range sources {
		remaps[i] = locator.NewIDRemap(src.NumPoints())
	}
	return &Result{Dst: dst, Remaps: remaps}
}

// footprint estimates the bytes preallocated for capacity points.
func footprint(dst *locator.Locator, capacity int) int64 {
	per := int64(pointBytes)
	for _, f := range dst.Attributes().Schema() {
		per += int64(f.Type.Size() * f.Components)
	}
	return per * int64(capacity)
}
