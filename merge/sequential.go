package merge

import (
	"fmt"
	"time"

	"github.com/hupe1980/pointmerge/locator"
)

// MergeSequential merges sources into dst on the calling goroutine, source
// by source and bucket by bucket. The resulting ids depend only on the
// order of sources.
func MergeSequential(dst *locator.Locator, sources []*locator.Locator) (*Result, error) {
	start := time.Now()
	capacity, err := prepare(dst, sources, 0)
	if err != nil {
		return nil, err
	}
	res := begin(dst, sources, capacity)
	for i, src := range sources {
		for b := range dst.NumBuckets() {
			if src.NumIDsInBucket(b) == 0 {
				continue
			}
			if err := dst.Merge(src, b, dst.Attributes(), src.Attributes(), res.Remaps[i]); err != nil {
				return nil, fmt.Errorf("source %d bucket %d: %w", i, b, err)
			}
		}
	}
	dst.FixSizeOfPointArray()
	res.NewPoints = dst.NumPoints()
	res.Duration = time.Since(start)
	return res, nil
}
