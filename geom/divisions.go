package geom

import (
	"fmt"
	"math"
)

// DivisionsForBinSize returns the divisions that cover b with bins whose
// edges are at most binSize long. Flat axes get a single bin.
func DivisionsForBinSize(b Bounds, binSize float64) (Divisions, error) {
	if !(binSize > 0) || math.IsInf(binSize, 0) {
		return Divisions{}, fmt.Errorf("%w: bin size %v", ErrInvalidGrid, binSize)
	}
	if b.IsEmpty() || !b.finite() {
		return Divisions{}, fmt.Errorf("%w: bounds %v", ErrInvalidGrid, b)
	}
	var d Divisions
	for axis, ext := range b.Extent() {
		d[axis] = clampDivision(ceilTol(ext / binSize))
	}
	return d, nil
}

// DivisionsForPointsPerBucket sizes bins so that numPoints uniformly
// distributed points would leave about perBucket points in each bin. Bins
// are kept as close to cubic as the aspect ratio of b allows.
func DivisionsForPointsPerBucket(b Bounds, numPoints, perBucket int) (Divisions, error) {
	if perBucket < 1 {
		return Divisions{}, fmt.Errorf("%w: points per bucket %d", ErrInvalidGrid, perBucket)
	}
	if b.IsEmpty() || !b.finite() {
		return Divisions{}, fmt.Errorf("%w: bounds %v", ErrInvalidGrid, b)
	}
	if numPoints < 1 {
		numPoints = 1
	}
	buckets := math.Ceil(float64(numPoints) / float64(perBucket))

	ext := b.Extent()
	volume, dims := 1.0, 0
	for _, e := range ext {
		if e > 0 {
			volume *= e
			dims++
		}
	}
	d := Divisions{1, 1, 1}
	if dims == 0 {
		return d, nil
	}
	edge := math.Pow(volume/buckets, 1/float64(dims))
	for axis, e := range ext {
		if e > 0 {
			d[axis] = clampDivision(ceilTol(e / edge))
		}
	}
	return d, nil
}

func clampDivision(v float64) int {
	const maxPerAxis = 1 << 10
	switch {
	case math.IsNaN(v) || v < 1:
		return 1
	case v > maxPerAxis:
		return maxPerAxis
	default:
		return int(v)
	}
}

// ceilTol rounds up, ignoring the last bits of rounding noise so that exact
// multiples of the bin edge do not gain an extra bin.
func ceilTol(v float64) float64 {
	return math.Ceil(v - 1e-9)
}
