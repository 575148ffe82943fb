package geom

import (
	"math"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Point
	Max Point
}

// EmptyBounds returns bounds that contain nothing. Extending them with any
// point yields the degenerate box around that point.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: Point{X: inf, Y: inf, Z: inf},
		Max: Point{X: -inf, Y: -inf, Z: -inf},
	}
}

// Cube returns the bounds [lo, hi]³.
func Cube(lo, hi float64) Bounds {
	return Bounds{Min: Pt(lo, lo, lo), Max: Pt(hi, hi, hi)}
}

// BoundsOf returns the aggregate extent of all given point sets.
func BoundsOf(sets ...[]Point) Bounds {
	b := EmptyBounds()
	for _, set := range sets {
		for _, p := range set {
			b = b.Extend(p)
		}
	}
	return b
}

// IsEmpty reports whether the bounds contain no points.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend returns the smallest bounds containing b and p.
func (b Bounds) Extend(p Point) Bounds {
	return Bounds{
		Min: Point{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: Point{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest bounds containing b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Contains reports whether p lies inside the closed box.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Extent returns the edge length along each axis.
func (b Bounds) Extent() [3]float64 {
	return [3]float64{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z}
}

// Equal reports bitwise equality of all six coordinates.
func (b Bounds) Equal(o Bounds) bool {
	return sameBits(b.Min.X, o.Min.X) && sameBits(b.Min.Y, o.Min.Y) && sameBits(b.Min.Z, o.Min.Z) &&
		sameBits(b.Max.X, o.Max.X) && sameBits(b.Max.Y, o.Max.Y) && sameBits(b.Max.Z, o.Max.Z)
}

func (b Bounds) finite() bool {
	for _, v := range [6]float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func sameBits(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}
