package points

import (
	"sync"
	"testing"

	"github.com/hupe1980/pointmerge/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray_SetWithinCapacity(t *testing.T) {
	a := New(2)
	require.NoError(t, a.Set(0, geom.Pt(1, 2, 3)))
	require.NoError(t, a.Set(1, geom.Pt(4, 5, 6)))

	err := a.Set(2, geom.Pt(0, 0, 0))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.ErrorIs(t, a.Set(-1, geom.Pt(0, 0, 0)), ErrCapacityExceeded)

	assert.Equal(t, int64(0), a.Len(), "Set does not change the logical length")
	a.Finalize(1)
	assert.Equal(t, []geom.Point{geom.Pt(1, 2, 3), geom.Pt(4, 5, 6)}, a.Slice())
}

func TestArray_FinalizeEmpty(t *testing.T) {
	a := New(4)
	a.Finalize(-1)
	assert.Equal(t, int64(0), a.Len())
	assert.Empty(t, a.Slice())
}

func TestArray_AppendGrows(t *testing.T) {
	a := New(0)
	for i := range 100 {
		require.NoError(t, a.Append(int64(i), geom.Pt(float64(i), 0, 0)))
	}
	assert.Equal(t, int64(100), a.Len())
	assert.GreaterOrEqual(t, a.Cap(), int64(100))

	p, ok := a.At(42)
	require.True(t, ok)
	assert.Equal(t, 42.0, p.X)
}

func TestArray_ReserveKeepsContents(t *testing.T) {
	a := New(1)
	require.NoError(t, a.Set(0, geom.Pt(7, 7, 7)))
	a.Reserve(10)
	p, ok := a.At(0)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(7, 7, 7), p)
	assert.Equal(t, int64(10), a.Cap())
}

func TestArray_ConcurrentDistinctSet(t *testing.T) {
	const n = 4096
	a := New(n)

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := w; id < n; id += 4 {
				_ = a.Set(int64(id), geom.Pt(float64(id), 0, 0))
			}
		}()
	}
	wg.Wait()
	a.Finalize(n - 1)

	for id, p := range a.Slice() {
		require.Equal(t, float64(id), p.X)
	}
}
