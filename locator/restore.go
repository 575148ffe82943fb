package locator

import (
	"fmt"

	"github.com/hupe1980/pointmerge/attribute"
	"github.com/hupe1980/pointmerge/geom"
)

// Restore rebuilds a finalized locator from its parts, as produced by a
// snapshot. buckets must hold one id list per bucket of grid. The result is
// checked with Validate.
func Restore(grid geom.Grid, tolerance float64, pts []geom.Point, buckets [][]int64, attrs *attribute.Set) (*Locator, error) {
	l, err := New(grid, tolerance, WithAttributes(attrs), WithCapacity(len(pts)))
	if err != nil {
		return nil, err
	}
	if len(buckets) != l.NumBuckets() {
		return nil, fmt.Errorf("%w: %d bucket lists for %d buckets", ErrLayoutMismatch, len(buckets), l.NumBuckets())
	}
	for id, p := range pts {
		_ = l.points.Set(int64(id), p)
	}
	copy(l.buckets, buckets)
	l.counter.Restore(int64(len(pts)))
	if err := l.Validate(); err != nil {
		return nil, err
	}
	l.FixSizeOfPointArray()
	return l, nil
}
