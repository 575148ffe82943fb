package locator

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/pointmerge/geom"
)

// Validate checks the structural invariants of l:
//
//   - every id in [0, NumPoints) appears in exactly one bucket
//   - every point lies in the bucket that holds its id
//   - no two points of a bucket are within tolerance of each other
//
// The last check only holds for locators built with InsertUnique or Merge.
// Validate is meant for tests and debugging; it is O(Σ bucket²).
func (l *Locator) Validate() error {
	n := l.counter.Load()
	seen := roaring64.New()

	var errs []error
	for b, ids := range l.buckets {
		for _, id := range ids {
			if id < 0 || id >= n {
				errs = append(errs, fmt.Errorf("%w: bucket %d holds id %d outside [0, %d)", ErrInvariantViolated, b, id, n))
				continue
			}
			if !seen.CheckedAdd(uint64(id)) {
				errs = append(errs, fmt.Errorf("%w: id %d appears in more than one bucket", ErrInvariantViolated, id))
			}
			p, _ := l.points.At(id)
			if got := l.grid.BucketOf(p); got != b {
				errs = append(errs, fmt.Errorf("%w: id %d at %v stored in bucket %d, maps to %d", ErrInvariantViolated, id, p, b, got))
			}
		}
		if err := l.checkBucketUnique(b, ids); err != nil {
			errs = append(errs, err)
		}
	}
	if card := seen.GetCardinality(); card != uint64(max(n, 0)) {
		errs = append(errs, fmt.Errorf("%w: %d distinct ids in buckets, %d allocated", ErrInvariantViolated, card, n))
	}
	return errors.Join(errs...)
}

func (l *Locator) checkBucketUnique(b int, ids []int64) error {
	for i := range ids {
		p, _ := l.points.At(ids[i])
		for j := i + 1; j < len(ids); j++ {
			q, _ := l.points.At(ids[j])
			if geom.Coincident(p, q, l.tol2) {
				return fmt.Errorf("%w: ids %d and %d in bucket %d are within tolerance", ErrInvariantViolated, ids[i], ids[j], b)
			}
		}
	}
	return nil
}
