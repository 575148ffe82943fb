package attribute

import "fmt"

// Column is implemented by *Array[T] for every supported element type.
type Column interface {
	Name() string
	Type() Type
	Components() int

	// Cap returns the number of tuples that can be written without growing.
	Cap() int64
	// Len returns the logical number of tuples.
	Len() int64
	// Reserve grows the tuple capacity to at least n.
	Reserve(n int)
	// Finalize sets the logical length to n tuples.
	Finalize(n int64)

	// Float64s returns the tuple at id converted to float64.
	Float64s(id int64) ([]float64, error)

	copyFrom(dst int64, src Column, srcID int64) error
	setFloat64s(id int64, vals []float64)
	emptyLike() Column
	appendValues(dst []byte) ([]byte, error)
	decodeValues(n int64, src []byte) (int, error)
}

// Array stores fixed-width tuples of T.
type Array[T Number] struct {
	name  string
	comps int
	data  []T // len(data) = capacity * comps
	n     int64
}

// NewArray returns an empty array of tuples with the given component count.
// A component count below one is treated as one.
func NewArray[T Number](name string, components int) *Array[T] {
	return &Array[T]{name: name, comps: max(components, 1)}
}

// Name returns the attribute name.
func (a *Array[T]) Name() string { return a.name }

// Type returns the element type.
func (a *Array[T]) Type() Type { return typeOf[T]() }

// Components returns the tuple width.
func (a *Array[T]) Components() int { return a.comps }

// Cap returns the tuple capacity.
func (a *Array[T]) Cap() int64 { return int64(len(a.data) / a.comps) }

// Len returns the logical number of tuples.
func (a *Array[T]) Len() int64 { return a.n }

// Reserve grows the capacity to at least n tuples. It must not run
// concurrently with writers.
func (a *Array[T]) Reserve(n int) {
	want := n * a.comps
	if want <= len(a.data) {
		return
	}
	grown := make([]T, want)
	copy(grown, a.data)
	a.data = grown
}

// Finalize sets the logical length, bounded by the capacity.
func (a *Array[T]) Finalize(n int64) {
	a.n = min(max(n, 0), a.Cap())
}

// Tuple returns the tuple at id. The slice aliases the array.
func (a *Array[T]) Tuple(id int64) ([]T, error) {
	if id < 0 || id >= a.Cap() {
		return nil, fmt.Errorf("%w: %s[%d]", ErrTupleOutOfRange, a.name, id)
	}
	off := int(id) * a.comps
	return a.data[off : off+a.comps], nil
}

// SetTuple writes vals at id within the reserved capacity. Concurrent calls
// with distinct ids are safe.
func (a *Array[T]) SetTuple(id int64, vals []T) error {
	if len(vals) != a.comps {
		return fmt.Errorf("%w: %s expects %d components, got %d", ErrSchemaMismatch, a.name, a.comps, len(vals))
	}
	if id < 0 || id >= a.Cap() {
		return fmt.Errorf("%w: %s[%d], capacity %d", ErrCapacityExceeded, a.name, id, a.Cap())
	}
	copy(a.data[int(id)*a.comps:], vals)
	return nil
}

// Append writes vals at id, growing the array as needed. Single-writer only.
func (a *Array[T]) Append(id int64, vals []T) error {
	if len(vals) != a.comps {
		return fmt.Errorf("%w: %s expects %d components, got %d", ErrSchemaMismatch, a.name, a.comps, len(vals))
	}
	a.grow(id)
	copy(a.data[int(id)*a.comps:], vals)
	return nil
}

// Values returns the first Len() tuples as a flat slice.
func (a *Array[T]) Values() []T {
	return a.data[:int(a.n)*a.comps]
}

// Float64s returns the tuple at id converted to float64.
func (a *Array[T]) Float64s(id int64) ([]float64, error) {
	t, err := a.Tuple(id)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(t))
	for i, v := range t {
		out[i] = float64(v)
	}
	return out, nil
}

func (a *Array[T]) grow(id int64) {
	if id >= a.Cap() {
		a.Reserve(max(int(id)+1, 2*int(a.Cap()), 16))
	}
	if id >= a.n {
		a.n = id + 1
	}
}

func (a *Array[T]) copyFrom(dst int64, src Column, srcID int64) error {
	s, ok := src.(*Array[T])
	if !ok || s.comps != a.comps {
		return fmt.Errorf("%w: %s", ErrSchemaMismatch, a.name)
	}
	if dst < 0 || dst >= a.Cap() {
		return fmt.Errorf("%w: %s[%d], capacity %d", ErrCapacityExceeded, a.name, dst, a.Cap())
	}
	if srcID < 0 || srcID >= s.Cap() {
		return fmt.Errorf("%w: %s[%d]", ErrTupleOutOfRange, s.name, srcID)
	}
	c := a.comps
	copy(a.data[int(dst)*c:int(dst)*c+c], s.data[int(srcID)*c:])
	return nil
}

func (a *Array[T]) setFloat64s(id int64, vals []float64) {
	a.grow(id)
	off := int(id) * a.comps
	for i := range a.comps {
		var v T
		if vals != nil {
			v = T(vals[i])
		}
		a.data[off+i] = v
	}
}

func (a *Array[T]) emptyLike() Column {
	return NewArray[T](a.name, a.comps)
}
