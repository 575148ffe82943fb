package locator

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/hupe1980/pointmerge/attribute"
	"github.com/hupe1980/pointmerge/geom"
	"github.com/hupe1980/pointmerge/internal/atomicid"
	"github.com/hupe1980/pointmerge/points"
)

// DefaultPointsPerBucketHint is the initial capacity of a bucket's id list.
const DefaultPointsPerBucketHint = 4

// Locator is a uniform-grid spatial hash with its own points and attributes.
type Locator struct {
	grid      geom.Grid
	tolerance float64
	tol2      float64

	buckets [][]int64
	hint    int

	points  *points.Array
	attrs   *attribute.Set
	counter atomicid.Counter
	state   atomic.Int32
}

// Option configures a Locator.
type Option func(*Locator)

// WithAttributes attaches an attribute set. The set's id space follows the
// locator's point ids.
func WithAttributes(s *attribute.Set) Option {
	return func(l *Locator) {
		l.attrs = s
	}
}

// WithPointsPerBucketHint sets the initial capacity of each bucket's id list.
func WithPointsPerBucketHint(n int) Option {
	return func(l *Locator) {
		if n > 0 {
			l.hint = n
		}
	}
}

// WithCapacity preallocates room for n points.
func WithCapacity(n int) Option {
	return func(l *Locator) {
		l.points.Reserve(n)
	}
}

// New returns an empty locator over grid. Points within tolerance of each
// other (Euclidean distance) are considered coincident.
func New(grid geom.Grid, tolerance float64, opts ...Option) (*Locator, error) {
	if grid.NumBuckets() == 0 {
		return nil, fmt.Errorf("%w: zero buckets", geom.ErrInvalidGrid)
	}
	if tolerance < 0 || math.IsNaN(tolerance) || math.IsInf(tolerance, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTolerance, tolerance)
	}
	// A zero squared tolerance selects exact matching.
	if tolerance > 0 && tolerance*tolerance == 0 {
		return nil, fmt.Errorf("%w: %v underflows when squared", ErrInvalidTolerance, tolerance)
	}
	l := &Locator{
		grid:      grid,
		tolerance: tolerance,
		tol2:      tolerance * tolerance,
		buckets:   make([][]int64, grid.NumBuckets()),
		hint:      DefaultPointsPerBucketHint,
		points:    points.New(0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// NewLike returns an empty locator with the grid and tolerance of l and an
// empty attribute set of the same schema.
func NewLike(l *Locator, opts ...Option) (*Locator, error) {
	base := []Option{WithPointsPerBucketHint(l.hint)}
	if l.attrs != nil {
		base = append(base, WithAttributes(l.attrs.NewEmptyLike()))
	}
	return New(l.grid, l.tolerance, append(base, opts...)...)
}

// Grid returns the bin structure.
func (l *Locator) Grid() geom.Grid { return l.grid }

// Tolerance returns the merge tolerance.
func (l *Locator) Tolerance() float64 { return l.tolerance }

// State returns the lifecycle state.
func (l *Locator) State() State { return State(l.state.Load()) }

// Attributes returns the attached attribute set, possibly nil.
func (l *Locator) Attributes() *attribute.Set { return l.attrs }

// Points returns the point storage.
func (l *Locator) Points() *points.Array { return l.points }

// NumBuckets returns the number of buckets.
func (l *Locator) NumBuckets() int { return len(l.buckets) }

// NumPoints returns the number of ids handed out.
func (l *Locator) NumPoints() int64 { return l.counter.Load() }

// MaxID returns the largest id handed out, or -1 for an empty locator.
func (l *Locator) MaxID() int64 { return l.counter.Load() - 1 }

// Point returns the coordinates stored under id.
func (l *Locator) Point(id int64) (geom.Point, bool) {
	if id < 0 || id >= l.counter.Load() {
		return geom.Point{}, false
	}
	return l.points.At(id)
}

// BucketOf returns the bucket index of p.
func (l *Locator) BucketOf(p geom.Point) int { return l.grid.BucketOf(p) }

// BucketIDs returns the ids of bucket b in insertion order. The slice is a
// view and must not be modified.
func (l *Locator) BucketIDs(b int) []int64 {
	if b < 0 || b >= len(l.buckets) {
		return nil
	}
	ids := l.buckets[b]
	return ids[:len(ids):len(ids)]
}

// NumIDsInBucket returns the number of ids in bucket b.
func (l *Locator) NumIDsInBucket(b int) int {
	if b < 0 || b >= len(l.buckets) {
		return 0
	}
	return len(l.buckets[b])
}

// DedupComplete reports whether the tolerance is small enough for the
// within-bucket deduplication to catch every coincident pair on the
// interior of bins.
func (l *Locator) DedupComplete() bool {
	return l.tolerance <= l.grid.MinBinEdge()
}

// InsertUnique inserts p unless a point within tolerance already exists in
// its bucket. It returns the id of the stored point and whether it was new.
// rec carries the new point's attributes and is ignored for existing points.
func (l *Locator) InsertUnique(p geom.Point, rec attribute.Record) (int64, bool, error) {
	if err := l.checkWritable(); err != nil {
		return -1, false, err
	}
	b := l.grid.BucketOf(p)
	if id, _, ok := l.closestIn(l.buckets[b], p); ok {
		return id, false, nil
	}
	id, err := l.insert(b, p, rec)
	if err != nil {
		return -1, false, err
	}
	return id, true, nil
}

// Insert stores p without looking for coincident points.
func (l *Locator) Insert(p geom.Point, rec attribute.Record) (int64, error) {
	if err := l.checkWritable(); err != nil {
		return -1, err
	}
	return l.insert(l.grid.BucketOf(p), p, rec)
}

// Lookup returns the id of a point within tolerance of p in p's bucket.
func (l *Locator) Lookup(p geom.Point) (int64, bool) {
	id, _, ok := l.closestIn(l.buckets[l.grid.BucketOf(p)], p)
	return id, ok
}

// FindClosestPoint returns the stored point nearest to p across all buckets,
// with its squared distance.
func (l *Locator) FindClosestPoint(p geom.Point) (int64, float64, bool) {
	if l.counter.Load() == 0 {
		return -1, 0, false
	}
	d := l.grid.Divisions()
	center := l.grid.Cell(p)
	maxLevel := max(d[0], d[1], d[2])

	best, bestD2 := int64(-1), math.Inf(1)
	for level := 0; level <= maxLevel; level++ {
		l.visitShell(center, level, func(b int) {
			for _, id := range l.buckets[b] {
				q, _ := l.points.At(id)
				if d2 := geom.Dist2(p, q); d2 < bestD2 {
					best, bestD2 = id, d2
				}
			}
		})
		if best >= 0 {
			gap := l.shellGap(p, center, level)
			if bestD2 <= gap*gap {
				break
			}
		}
	}
	return best, bestD2, best >= 0
}

// Stats summarizes bucket occupancy.
type Stats struct {
	Points       int64
	Buckets      int
	EmptyBuckets int
	MaxPerBucket int
}

// Stats returns the current bucket occupancy.
func (l *Locator) Stats() Stats {
	s := Stats{Points: l.counter.Load(), Buckets: len(l.buckets)}
	for _, ids := range l.buckets {
		if len(ids) == 0 {
			s.EmptyBuckets++
		}
		s.MaxPerBucket = max(s.MaxPerBucket, len(ids))
	}
	return s
}

func (l *Locator) checkWritable() error {
	switch l.State() {
	case StateFinalized:
		return ErrFinalized
	case StateMerging:
		return ErrMergeInProgress
	default:
		return nil
	}
}

// insert appends a new point to bucket b. Attributes are validated before
// anything is written.
func (l *Locator) insert(b int, p geom.Point, rec attribute.Record) (int64, error) {
	id := l.counter.Load()
	if err := l.attrs.SetTuple(id, rec); err != nil {
		return -1, err
	}
	if err := l.points.Append(id, p); err != nil {
		return -1, err
	}
	l.appendID(b, id)
	l.counter.FetchAdd(1)
	return id, nil
}

func (l *Locator) appendID(b int, id int64) {
	if l.buckets[b] == nil {
		l.buckets[b] = make([]int64, 0, l.hint)
	}
	l.buckets[b] = append(l.buckets[b], id)
}

// closestIn returns the id in ids nearest to p within tolerance. Ties keep
// the earlier id.
func (l *Locator) closestIn(ids []int64, p geom.Point) (int64, float64, bool) {
	best, bestD2 := int64(-1), math.Inf(1)
	for _, id := range ids {
		q, _ := l.points.At(id)
		if !geom.Coincident(p, q, l.tol2) {
			continue
		}
		if l.tol2 == 0 {
			return id, 0, true
		}
		if d2 := geom.Dist2(p, q); d2 < bestD2 {
			best, bestD2 = id, d2
		}
	}
	return best, bestD2, best >= 0
}

// visitShell calls fn for every in-range bucket at Chebyshev distance level
// from center.
func (l *Locator) visitShell(center [3]int, level int, fn func(b int)) {
	for k := center[2] - level; k <= center[2]+level; k++ {
		for j := center[1] - level; j <= center[1]+level; j++ {
			for i := center[0] - level; i <= center[0]+level; i++ {
				onShell := abs(i-center[0]) == level || abs(j-center[1]) == level || abs(k-center[2]) == level
				c := [3]int{i, j, k}
				if onShell && l.grid.InRange(c) {
					fn(l.grid.Index(c))
				}
			}
		}
	}
}

// shellGap returns a lower bound on the distance from p to any point stored
// outside the block of buckets within level of center. Sides of the block
// that reach the grid boundary do not count: nothing lies beyond them.
func (l *Locator) shellGap(p geom.Point, center [3]int, level int) float64 {
	d := l.grid.Divisions()
	lo := l.grid.Bounds().Min
	edge := l.grid.BinEdge()
	coords := [3]float64{p.X, p.Y, p.Z}
	origin := [3]float64{lo.X, lo.Y, lo.Z}

	gap := math.Inf(1)
	for axis := range 3 {
		if edge[axis] == 0 {
			continue
		}
		if first := center[axis] - level; first > 0 {
			face := origin[axis] + float64(first)*edge[axis]
			gap = math.Min(gap, math.Max(coords[axis]-face, 0))
		}
		if last := center[axis] + level; last < d[axis]-1 {
			face := origin[axis] + float64(last+1)*edge[axis]
			gap = math.Min(gap, math.Max(face-coords[axis], 0))
		}
	}
	return gap
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
