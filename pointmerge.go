package pointmerge

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/pointmerge/geom"
	"github.com/hupe1980/pointmerge/locator"
	"github.com/hupe1980/pointmerge/merge"
)

// Result describes a finished merge. Call Release once the destination is
// no longer needed.
type Result = merge.Result

// Merge combines sources into a new locator. The destination takes the grid,
// tolerance and attribute schema of the first source; every other source
// must share the grid and schema.
func Merge(ctx context.Context, sources []*locator.Locator, opts ...Option) (*Result, error) {
	o := applyOptions(opts)
	start := time.Now()

	res, err := runMerge(ctx, sources, o)
	if err != nil {
		err = translateError(err)
		o.metricsCollector.RecordMerge(len(sources), 0, time.Since(start), err)
		o.logger.LogMerge(ctx, len(sources), 0, time.Since(start), err)
		return nil, err
	}
	o.metricsCollector.RecordMerge(len(sources), res.NewPoints, res.Duration, nil)
	o.logger.LogMerge(ctx, len(sources), res.NewPoints, res.Duration, nil)
	return res, nil
}

func runMerge(ctx context.Context, sources []*locator.Locator, o options) (*Result, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if sources[0] == nil {
		return nil, fmt.Errorf("source 0: %w", merge.ErrNilLocator)
	}
	dst, err := locator.NewLike(sources[0])
	if err != nil {
		return nil, err
	}

	m := merge.New(
		merge.WithWorkers(o.workers),
		merge.WithStrategy(o.strategy),
		merge.WithMemoryLimit(o.memoryLimit),
		merge.WithCapacity(o.capacity),
		merge.WithLogger(o.logger.With("component", "merge")),
		merge.WithObserver(o.metricsCollector),
	)
	res, err := m.Run(ctx, dst, sources)
	if err != nil {
		return nil, err
	}

	if o.validate {
		start := time.Now()
		verr := merge.Verify(res, sources)
		o.metricsCollector.RecordValidate(time.Since(start), verr)
		o.logger.LogValidate(ctx, dst.NumPoints(), time.Since(start), verr)
		if verr != nil {
			res.Release()
			return nil, verr
		}
	}
	return res, nil
}

// NewGrid returns a grid over bounds whose bins are about binSize wide
// along every axis.
func NewGrid(bounds geom.Bounds, binSize float64) (geom.Grid, error) {
	d, err := geom.DivisionsForBinSize(bounds, binSize)
	if err != nil {
		return geom.Grid{}, err
	}
	return geom.NewGrid(bounds, d)
}

// NewGridForPoints returns a grid over bounds sized so that numPoints
// uniformly spread points leave about perBucket points in each bin.
func NewGridForPoints(bounds geom.Bounds, numPoints, perBucket int) (geom.Grid, error) {
	d, err := geom.DivisionsForPointsPerBucket(bounds, numPoints, perBucket)
	if err != nil {
		return geom.Grid{}, err
	}
	return geom.NewGrid(bounds, d)
}
