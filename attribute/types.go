package attribute

import "fmt"

// Type identifies the element type of an array.
type Type uint8

const (
	// Float32 stores float32 elements.
	Float32 Type = iota + 1
	// Float64 stores float64 elements.
	Float64
	// Int32 stores int32 elements.
	Int32
	// Int64 stores int64 elements.
	Int64
)

func (t Type) String() string {
	switch t {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Size returns the element width in bytes.
func (t Type) Size() int {
	switch t {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	default:
		return 0
	}
}

// Valid reports whether t is one of the supported element types.
func (t Type) Valid() bool {
	return t >= Float32 && t <= Int64
}

// Number is the set of supported element types.
type Number interface {
	float32 | float64 | int32 | int64
}

func typeOf[T Number]() Type {
	var zero T
	switch any(zero).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	default:
		return Int64
	}
}

// Field describes one array of a set.
type Field struct {
	Name       string
	Type       Type
	Components int
}

// Record holds one tuple per attribute name, expressed as float64 values.
type Record map[string][]float64
