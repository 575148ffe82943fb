package locator

import (
	"testing"

	"github.com/hupe1980/pointmerge/attribute"
	"github.com/hupe1980/pointmerge/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocator(t *testing.T, g geom.Grid, tol float64, opts ...Option) *Locator {
	t.Helper()
	l, err := New(g, tol, opts...)
	require.NoError(t, err)
	return l
}

func TestNew_RejectsBadTolerance(t *testing.T) {
	g := geom.MustGrid(geom.Cube(0, 1), geom.Divisions{1, 1, 1})
	_, err := New(g, -1)
	assert.ErrorIs(t, err, ErrInvalidTolerance)

	// 1e-170 squared is zero, which would silently mean exact matching.
	_, err = New(g, 1e-170)
	assert.ErrorIs(t, err, ErrInvalidTolerance)

	l, err := New(g, 1e-150)
	require.NoError(t, err)
	_, _, err = l.InsertUnique(geom.Pt(0, 0, 0), nil)
	require.NoError(t, err)
	_, isNew, err := l.InsertUnique(geom.Pt(0, 0, 1e-160), nil)
	require.NoError(t, err)
	assert.False(t, isNew)

	_, err = New(geom.Grid{}, 0)
	assert.ErrorIs(t, err, geom.ErrInvalidGrid)
}

func TestInsertUnique_RoundTrip(t *testing.T) {
	l := newLocator(t, geom.MustGrid(geom.Cube(0, 1), geom.Divisions{4, 4, 4}), 0)
	p := geom.Pt(0.3, 0.6, 0.9)

	id, isNew, err := l.InsertUnique(p, nil)
	require.NoError(t, err)
	assert.True(t, isNew)

	again, isNew, err := l.InsertUnique(p, nil)
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, id, again)
	assert.Equal(t, int64(1), l.NumPoints())
}

func TestInsertUnique_Tolerance(t *testing.T) {
	l := newLocator(t, geom.MustGrid(geom.Cube(0, 1), geom.Divisions{1, 1, 1}), 0.01)

	a, _, err := l.InsertUnique(geom.Pt(0.5, 0.5, 0.5), nil)
	require.NoError(t, err)
	b, isNew, err := l.InsertUnique(geom.Pt(0.505, 0.5, 0.5), nil)
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, a, b)

	_, isNew, err = l.InsertUnique(geom.Pt(0.52, 0.5, 0.5), nil)
	require.NoError(t, err)
	assert.True(t, isNew)
}

func TestInsertUnique_PicksClosest(t *testing.T) {
	l := newLocator(t, geom.MustGrid(geom.Cube(0, 1), geom.Divisions{1, 1, 1}), 0.1)
	_, err := l.Insert(geom.Pt(0.5, 0.5, 0.5), nil)
	require.NoError(t, err)
	near, err := l.Insert(geom.Pt(0.56, 0.5, 0.5), nil)
	require.NoError(t, err)

	id, isNew, err := l.InsertUnique(geom.Pt(0.55, 0.5, 0.5), nil)
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, near, id)
}

func TestInsertUnique_Attributes(t *testing.T) {
	attrs, err := attribute.NewSet(attribute.NewArray[float64]("T", 1))
	require.NoError(t, err)
	l := newLocator(t, geom.MustGrid(geom.Cube(0, 1), geom.Divisions{2, 2, 2}), 0, WithAttributes(attrs))

	_, _, err = l.InsertUnique(geom.Pt(0.1, 0.1, 0.1), attribute.Record{"T": {10}})
	require.NoError(t, err)
	_, _, err = l.InsertUnique(geom.Pt(0.9, 0.9, 0.9), attribute.Record{"X": {1}})
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Equal(t, int64(1), l.NumPoints(), "rejected insert must not allocate an id")

	rec, err := attrs.Tuple(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{10}, rec["T"])
}

func TestLookupAndBucketIDs(t *testing.T) {
	g := geom.MustGrid(geom.Cube(0, 1), geom.Divisions{2, 1, 1})
	l := newLocator(t, g, 0)

	ids := make([]int64, 0, 3)
	for _, p := range []geom.Point{geom.Pt(0.1, 0, 0), geom.Pt(0.9, 0, 0), geom.Pt(0.2, 0, 0)} {
		id, _, err := l.InsertUnique(p, nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	assert.Equal(t, []int64{ids[0], ids[2]}, l.BucketIDs(0))
	assert.Equal(t, []int64{ids[1]}, l.BucketIDs(1))
	assert.Equal(t, 2, l.NumIDsInBucket(0))
	assert.Nil(t, l.BucketIDs(5))
	assert.Equal(t, 0, l.NumIDsInBucket(-1))

	id, ok := l.Lookup(geom.Pt(0.9, 0, 0))
	require.True(t, ok)
	assert.Equal(t, ids[1], id)
	_, ok = l.Lookup(geom.Pt(0.8, 0, 0))
	assert.False(t, ok)
}

func TestFindClosestPoint(t *testing.T) {
	g := geom.MustGrid(geom.Cube(0, 1), geom.Divisions{10, 10, 10})
	l := newLocator(t, g, 0)

	_, _, ok := l.FindClosestPoint(geom.Pt(0.5, 0.5, 0.5))
	assert.False(t, ok)

	far, err := l.Insert(geom.Pt(0.95, 0.95, 0.95), nil)
	require.NoError(t, err)
	near, err := l.Insert(geom.Pt(0.31, 0.52, 0.5), nil)
	require.NoError(t, err)
	// Same bucket as the query but farther away than near.
	_, err = l.Insert(geom.Pt(0.59, 0.59, 0.59), nil)
	require.NoError(t, err)

	id, d2, ok := l.FindClosestPoint(geom.Pt(0.55, 0.55, 0.55))
	require.True(t, ok)
	assert.NotEqual(t, near, id)
	assert.InDelta(t, 3*0.04*0.04, d2, 1e-12)

	id, _, ok = l.FindClosestPoint(geom.Pt(0.3, 0.5, 0.5))
	require.True(t, ok)
	assert.Equal(t, near, id)

	// Query outside the bounds still finds the nearest point.
	id, _, ok = l.FindClosestPoint(geom.Pt(5, 5, 5))
	require.True(t, ok)
	assert.Equal(t, far, id)
}

func TestFindClosestPoint_MatchesBruteForce(t *testing.T) {
	g := geom.MustGrid(geom.Cube(0, 1), geom.Divisions{6, 6, 6})
	l := newLocator(t, g, 0)
	pts := randomPoints(7, 300)
	for _, p := range pts {
		_, err := l.Insert(p, nil)
		require.NoError(t, err)
	}

	for _, q := range randomPoints(8, 50) {
		_, d2, ok := l.FindClosestPoint(q)
		require.True(t, ok)
		want := geom.Dist2(q, pts[0])
		for _, p := range pts[1:] {
			want = min(want, geom.Dist2(q, p))
		}
		assert.Equal(t, want, d2)
	}
}

func TestInsert_RejectedWhenFinalized(t *testing.T) {
	l := newLocator(t, geom.MustGrid(geom.Cube(0, 1), geom.Divisions{1, 1, 1}), 0)
	l.InitializeMerge()
	l.FixSizeOfPointArray()

	_, _, err := l.InsertUnique(geom.Pt(0, 0, 0), nil)
	assert.ErrorIs(t, err, ErrFinalized)
	_, err = l.Insert(geom.Pt(0, 0, 0), nil)
	assert.ErrorIs(t, err, ErrFinalized)
}

func TestStatsAndDedupComplete(t *testing.T) {
	g := geom.MustGrid(geom.Cube(0, 1), geom.Divisions{2, 2, 2})
	l := newLocator(t, g, 0.1)
	for _, p := range []geom.Point{geom.Pt(0.1, 0.1, 0.1), geom.Pt(0.3, 0.3, 0.3), geom.Pt(0.9, 0.9, 0.9)} {
		_, _, err := l.InsertUnique(p, nil)
		require.NoError(t, err)
	}
	s := l.Stats()
	assert.Equal(t, int64(3), s.Points)
	assert.Equal(t, 8, s.Buckets)
	assert.Equal(t, 6, s.EmptyBuckets)
	assert.Equal(t, 2, s.MaxPerBucket)

	assert.True(t, l.DedupComplete())
	coarse := newLocator(t, g, 0.6)
	assert.False(t, coarse.DedupComplete())
}

func TestValidate_DetectsViolations(t *testing.T) {
	g := geom.MustGrid(geom.Cube(0, 1), geom.Divisions{2, 1, 1})
	l := newLocator(t, g, 0)
	_, err := l.Insert(geom.Pt(0.1, 0, 0), nil)
	require.NoError(t, err)
	require.NoError(t, l.Validate())

	// Plain Insert allows duplicates, which Validate reports.
	_, err = l.Insert(geom.Pt(0.1, 0, 0), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, l.Validate(), ErrInvariantViolated)

	// A misplaced id breaks bucket consistency.
	m := newLocator(t, g, 0)
	_, err = m.Insert(geom.Pt(0.9, 0, 0), nil)
	require.NoError(t, err)
	m.buckets[0], m.buckets[1] = m.buckets[1], m.buckets[0]
	assert.ErrorIs(t, m.Validate(), ErrInvariantViolated)
}

func TestRestore(t *testing.T) {
	g := geom.MustGrid(geom.Cube(0, 1), geom.Divisions{2, 1, 1})
	pts := []geom.Point{geom.Pt(0.1, 0, 0), geom.Pt(0.9, 0, 0)}

	l, err := Restore(g, 0, pts, [][]int64{{0}, {1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, StateFinalized, l.State())
	assert.Equal(t, pts, l.Points().Slice())

	_, err = Restore(g, 0, pts, [][]int64{{0, 1}, {}}, nil)
	assert.ErrorIs(t, err, ErrInvariantViolated)

	_, err = Restore(g, 0, pts, [][]int64{{0, 1}}, nil)
	assert.ErrorIs(t, err, ErrLayoutMismatch)
}
