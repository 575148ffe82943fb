package attribute

import (
	"encoding/binary"
	"fmt"
)

// NewColumn returns an empty array described by f.
func NewColumn(f Field) (Column, error) {
	if f.Components < 1 {
		return nil, fmt.Errorf("%w: %s has %d components", ErrSchemaMismatch, f.Name, f.Components)
	}
	switch f.Type {
	case Float32:
		return NewArray[float32](f.Name, f.Components), nil
	case Float64:
		return NewArray[float64](f.Name, f.Components), nil
	case Int32:
		return NewArray[int32](f.Name, f.Components), nil
	case Int64:
		return NewArray[int64](f.Name, f.Components), nil
	default:
		return nil, fmt.Errorf("%w: %s has unknown type %v", ErrSchemaMismatch, f.Name, f.Type)
	}
}

// AppendValues appends the first Len() tuples of c to dst in little-endian
// order.
func AppendValues(dst []byte, c Column) ([]byte, error) {
	return c.appendValues(dst)
}

// DecodeValues replaces the contents of c with n tuples read from src and
// returns the number of bytes consumed.
func DecodeValues(c Column, n int64, src []byte) (int, error) {
	return c.decodeValues(n, src)
}

func (a *Array[T]) appendValues(dst []byte) ([]byte, error) {
	return binary.Append(dst, binary.LittleEndian, a.Values())
}

func (a *Array[T]) decodeValues(n int64, src []byte) (int, error) {
	want := int(n) * a.comps * typeOf[T]().Size()
	if n < 0 || len(src) < want {
		return 0, fmt.Errorf("%w: %s needs %d bytes, have %d", ErrTupleOutOfRange, a.name, want, len(src))
	}
	a.Reserve(int(n))
	if _, err := binary.Decode(src[:want], binary.LittleEndian, a.data[:int(n)*a.comps]); err != nil {
		return 0, err
	}
	a.n = n
	return want, nil
}
