package geom

import (
	"errors"
	"fmt"
	"math"
)

// MaxBuckets bounds the total number of buckets of a grid.
const MaxBuckets = 1 << 30

// ErrInvalidGrid is returned when bounds or divisions cannot form a grid.
var ErrInvalidGrid = errors.New("geom: invalid grid")

// Divisions holds the number of bins along each axis.
type Divisions [3]int

// Count returns the total number of bins.
func (d Divisions) Count() int {
	return d[0] * d[1] * d[2]
}

// Grid is a uniform bin structure over a bounding box. Grids are immutable
// values; two grids are interchangeable only when Equal reports true.
type Grid struct {
	bounds    Bounds
	divisions Divisions
	scale     [3]float64 // divisions / extent, 0 on flat axes
}

// NewGrid validates bounds and divisions and returns the grid.
func NewGrid(bounds Bounds, divisions Divisions) (Grid, error) {
	if bounds.IsEmpty() || !bounds.finite() {
		return Grid{}, fmt.Errorf("%w: bounds %v", ErrInvalidGrid, bounds)
	}
	total := 1
	for axis, n := range divisions {
		if n < 1 {
			return Grid{}, fmt.Errorf("%w: divisions[%d] = %d", ErrInvalidGrid, axis, n)
		}
		total *= n
		if total > MaxBuckets {
			return Grid{}, fmt.Errorf("%w: more than %d buckets", ErrInvalidGrid, MaxBuckets)
		}
	}

	g := Grid{bounds: bounds, divisions: divisions}
	ext := bounds.Extent()
	for axis := range 3 {
		if ext[axis] > 0 {
			g.scale[axis] = float64(divisions[axis]) / ext[axis]
		}
	}
	return g, nil
}

// MustGrid is like NewGrid but panics on error. Intended for tests and
// literal configurations.
func MustGrid(bounds Bounds, divisions Divisions) Grid {
	g, err := NewGrid(bounds, divisions)
	if err != nil {
		panic(err)
	}
	return g
}

// Bounds returns the grid's bounding box.
func (g Grid) Bounds() Bounds { return g.bounds }

// Divisions returns the number of bins per axis.
func (g Grid) Divisions() Divisions { return g.divisions }

// NumBuckets returns D[0]·D[1]·D[2].
func (g Grid) NumBuckets() int { return g.divisions.Count() }

// Equal reports whether both grids have bitwise-identical bounds and the
// same divisions.
func (g Grid) Equal(o Grid) bool {
	return g.divisions == o.divisions && g.bounds.Equal(o.bounds)
}

// BinEdge returns the bin edge length along each axis.
func (g Grid) BinEdge() [3]float64 {
	ext := g.bounds.Extent()
	return [3]float64{
		ext[0] / float64(g.divisions[0]),
		ext[1] / float64(g.divisions[1]),
		ext[2] / float64(g.divisions[2]),
	}
}

// MinBinEdge returns the smallest non-zero bin edge, or +Inf for a grid
// that is flat on every axis.
func (g Grid) MinBinEdge() float64 {
	m := math.Inf(1)
	for _, e := range g.BinEdge() {
		if e > 0 && e < m {
			m = e
		}
	}
	return m
}

// Cell returns the per-axis bin coordinates of p.
func (g Grid) Cell(p Point) [3]int {
	return [3]int{g.axisBin(p, 0), g.axisBin(p, 1), g.axisBin(p, 2)}
}

// BucketOf returns the linear bucket index of p.
func (g Grid) BucketOf(p Point) int {
	return g.Index(g.Cell(p))
}

// Index linearizes bin coordinates. The coordinates must be in range.
func (g Grid) Index(c [3]int) int {
	return c[0] + c[1]*g.divisions[0] + c[2]*g.divisions[0]*g.divisions[1]
}

// CellOf is the inverse of Index.
func (g Grid) CellOf(b int) [3]int {
	d0, d1 := g.divisions[0], g.divisions[1]
	return [3]int{b % d0, (b / d0) % d1, b / (d0 * d1)}
}

// InRange reports whether c addresses a bin of the grid.
func (g Grid) InRange(c [3]int) bool {
	for axis := range 3 {
		if c[axis] < 0 || c[axis] >= g.divisions[axis] {
			return false
		}
	}
	return true
}

// axisBin maps one coordinate to its bin. Interior boundaries go to the
// lower bin: t in (k, k+1] lands in bin k.
func (g Grid) axisBin(p Point, axis int) int {
	n := g.divisions[axis]
	if n == 1 || g.scale[axis] == 0 {
		return 0
	}
	t := (component(p, axis) - component(g.bounds.Min, axis)) * g.scale[axis]
	if math.IsNaN(t) || t <= 0 {
		return 0
	}
	if t >= float64(n) {
		return n - 1
	}
	return int(math.Ceil(t)) - 1
}
