package testutil

import (
	"math/rand/v2"
	"sync"

	"github.com/hupe1980/pointmerge/geom"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

func (r *RNG) pointIn(b geom.Bounds) geom.Point {
	ext := b.Extent()
	return geom.Pt(
		b.Min.X+r.rand.Float64()*ext[0],
		b.Min.Y+r.rand.Float64()*ext[1],
		b.Min.Z+r.rand.Float64()*ext[2],
	)
}

// UniformPoints returns num points uniformly distributed in b.
func (r *RNG) UniformPoints(num int, b geom.Bounds) []geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]geom.Point, num)
	for i := range pts {
		pts[i] = r.pointIn(b)
	}
	return pts
}

// ClusteredPoints returns num points scattered with Gaussian noise around
// random centers in b. Points are clamped to b.
// Useful for skewed bucket occupancy.
func (r *RNG) ClusteredPoints(num int, b geom.Bounds, clusters int, spread float64) []geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers := make([]geom.Point, max(clusters, 1))
	for i := range centers {
		centers[i] = r.pointIn(b)
	}
	pts := make([]geom.Point, num)
	for i := range pts {
		c := centers[i%len(centers)]
		pts[i] = geom.Pt(
			clamp(c.X+r.rand.NormFloat64()*spread, b.Min.X, b.Max.X),
			clamp(c.Y+r.rand.NormFloat64()*spread, b.Min.Y, b.Max.Y),
			clamp(c.Z+r.rand.NormFloat64()*spread, b.Min.Z, b.Max.Z),
		)
	}
	return pts
}

// LatticePoints returns the n×n×n lattice spanning b, corners included.
// Lattice points fall on bin boundaries when the grid divisions divide n-1.
func LatticePoints(n int, b geom.Bounds) []geom.Point {
	if n < 2 {
		return []geom.Point{b.Min}
	}
	ext := b.Extent()
	step := func(axis, i int) float64 {
		return float64(i) * ext[axis] / float64(n-1)
	}
	pts := make([]geom.Point, 0, n*n*n)
	for k := range n {
		for j := range n {
			for i := range n {
				pts = append(pts, geom.Pt(b.Min.X+step(0, i), b.Min.Y+step(1, j), b.Min.Z+step(2, k)))
			}
		}
	}
	return pts
}

// Overlapping deals pts to numSources producers. Every point goes to one
// producer; a fraction shared of the points is additionally given to a
// second one, as on the interface between two partitions.
func (r *RNG) Overlapping(pts []geom.Point, numSources int, shared float64) [][]geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	parts := make([][]geom.Point, numSources)
	for _, p := range pts {
		i := r.rand.IntN(numSources)
		parts[i] = append(parts[i], p)
		if numSources > 1 && r.rand.Float64() < shared {
			j := (i + 1 + r.rand.IntN(numSources-1)) % numSources
			parts[j] = append(parts[j], p)
		}
	}
	return parts
}

// Shuffle permutes pts in place.
func (r *RNG) Shuffle(pts []geom.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(pts), func(i, j int) { pts[i], pts[j] = pts[j], pts[i] })
}

// DistinctCount returns the number of points left when pts are merged
// greedily in order, each point being dropped if it lies within tolerance
// of a point kept before it. It is quadratic and meant for small inputs
// whose coincident points are well separated from each other.
func DistinctCount(pts []geom.Point, tolerance float64) int {
	tol2 := tolerance * tolerance
	var kept []geom.Point
outer:
	for _, p := range pts {
		for _, q := range kept {
			if geom.Coincident(p, q, tol2) {
				continue outer
			}
		}
		kept = append(kept, p)
	}
	return len(kept)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
