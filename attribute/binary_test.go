package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColumn(t *testing.T) {
	for _, typ := range []Type{Float32, Float64, Int32, Int64} {
		c, err := NewColumn(Field{Name: "a", Type: typ, Components: 2})
		require.NoError(t, err)
		assert.Equal(t, typ, c.Type())
		assert.Equal(t, 2, c.Components())
		assert.Zero(t, c.Len())
	}

	_, err := NewColumn(Field{Name: "a", Type: Type(99), Components: 1})
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	_, err = NewColumn(Field{Name: "a", Type: Float32, Components: 0})
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestValues_RoundTrip(t *testing.T) {
	src := NewArray[int64]("id", 2)
	for i := range int64(5) {
		require.NoError(t, src.Append(i, []int64{i, -i * 1000}))
	}

	buf, err := AppendValues([]byte("prefix"), src)
	require.NoError(t, err)
	require.Len(t, buf, len("prefix")+5*2*8)

	dst, err := NewColumn(Field{Name: "id", Type: Int64, Components: 2})
	require.NoError(t, err)
	n, err := DecodeValues(dst, 5, buf[len("prefix"):])
	require.NoError(t, err)
	assert.Equal(t, 5*2*8, n)
	assert.Equal(t, src.Values(), dst.(*Array[int64]).Values())
}

func TestValues_Float32(t *testing.T) {
	src := NewArray[float32]("n", 3)
	require.NoError(t, src.Append(0, []float32{0.5, -1.25, 3}))
	require.NoError(t, src.Append(1, []float32{1, 2, 4}))

	buf, err := AppendValues(nil, src)
	require.NoError(t, err)

	dst := NewArray[float32]("n", 3)
	_, err = DecodeValues(dst, 2, buf)
	require.NoError(t, err)
	tuple, err := dst.Tuple(1)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 4}, tuple)
	assert.Equal(t, int64(2), dst.Len())
}

func TestDecodeValues_ShortInput(t *testing.T) {
	dst := NewArray[float64]("x", 1)
	_, err := DecodeValues(dst, 3, make([]byte, 16))
	assert.ErrorIs(t, err, ErrTupleOutOfRange)
	assert.Zero(t, dst.Len())
}

func TestAppendValues_Empty(t *testing.T) {
	buf, err := AppendValues(nil, NewArray[int32]("x", 1))
	require.NoError(t, err)
	assert.Empty(t, buf)
}
