package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_Validation(t *testing.T) {
	_, err := NewGrid(Cube(0, 1), Divisions{0, 1, 1})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = NewGrid(EmptyBounds(), Divisions{1, 1, 1})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = NewGrid(Bounds{Min: Pt(0, 0, 0), Max: Pt(math.NaN(), 1, 1)}, Divisions{1, 1, 1})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = NewGrid(Cube(0, 1), Divisions{2048, 2048, 2048})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	g, err := NewGrid(Cube(0, 1), Divisions{2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 24, g.NumBuckets())
}

func TestGrid_BucketOf_LowerBinOnBoundary(t *testing.T) {
	g := MustGrid(Bounds{Min: Pt(0, 0, 0), Max: Pt(2, 1, 1)}, Divisions{2, 1, 1})

	assert.Equal(t, 0, g.BucketOf(Pt(0, 0.5, 0.5)))
	assert.Equal(t, 0, g.BucketOf(Pt(0.5, 0.5, 0.5)))
	assert.Equal(t, 0, g.BucketOf(Pt(1.0, 0.5, 0.5)), "interior boundary belongs to the lower bin")
	assert.Equal(t, 1, g.BucketOf(Pt(1.0001, 0.5, 0.5)))
	assert.Equal(t, 1, g.BucketOf(Pt(2, 0.5, 0.5)))
}

func TestGrid_BucketOf_ClampsOutside(t *testing.T) {
	g := MustGrid(Cube(0, 1), Divisions{4, 4, 4})

	assert.Equal(t, 0, g.BucketOf(Pt(-5, -5, -5)))
	assert.Equal(t, g.NumBuckets()-1, g.BucketOf(Pt(5, 5, 5)))
	assert.Equal(t, 0, g.BucketOf(Pt(math.NaN(), 0, 0)))
}

func TestGrid_IndexRoundTrip(t *testing.T) {
	g := MustGrid(Cube(0, 1), Divisions{3, 4, 5})
	for b := range g.NumBuckets() {
		c := g.CellOf(b)
		require.True(t, g.InRange(c))
		assert.Equal(t, b, g.Index(c))
	}
	assert.False(t, g.InRange([3]int{3, 0, 0}))
	assert.False(t, g.InRange([3]int{0, -1, 0}))
}

func TestGrid_Linearization(t *testing.T) {
	g := MustGrid(Cube(0, 3), Divisions{3, 3, 3})
	// (i, j, k) = (2, 1, 0)
	assert.Equal(t, 2+1*3, g.BucketOf(Pt(2.5, 1.5, 0.5)))
	// (i, j, k) = (0, 0, 2)
	assert.Equal(t, 2*9, g.BucketOf(Pt(0.5, 0.5, 2.5)))
}

func TestGrid_FlatAxis(t *testing.T) {
	g := MustGrid(Bounds{Min: Pt(0, 0, 0), Max: Pt(1, 1, 0)}, Divisions{2, 2, 3})
	assert.Equal(t, 0, g.Cell(Pt(0, 0, 0))[2])
	assert.Equal(t, 0.5, g.MinBinEdge())
}

func TestGrid_Equal(t *testing.T) {
	a := MustGrid(Cube(0, 1), Divisions{2, 2, 2})
	b := MustGrid(Cube(0, 1), Divisions{2, 2, 2})
	c := MustGrid(Cube(0, 1), Divisions{2, 2, 3})
	d := MustGrid(Cube(0, math.Nextafter(1, 2)), Divisions{2, 2, 2})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestCoincident(t *testing.T) {
	p := Pt(0.1, 0.2, 0.3)
	assert.True(t, Coincident(p, p, 0))
	assert.False(t, Coincident(p, Pt(0.1, 0.2, math.Nextafter(0.3, 1)), 0))
	assert.True(t, Coincident(p, Pt(0.1, 0.2, 0.3+1e-7), 1e-12))
	assert.False(t, Coincident(p, Pt(0.1, 0.2, 0.3+1e-5), 1e-12))
}

func TestCoincident_ZeroToleranceIsBitwise(t *testing.T) {
	assert.False(t, Coincident(Pt(0, 0, 0), Pt(math.Copysign(0, -1), 0, 0), 0))
	nan := math.NaN()
	assert.True(t, Coincident(Pt(nan, 0, 0), Pt(nan, 0, 0), 0))
}
