package geom

import "github.com/golang/geo/r3"

// Point is a 3-D coordinate in double precision.
type Point = r3.Vector

// Pt is shorthand for Point{X: x, Y: y, Z: z}.
func Pt(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Dist2 returns the squared Euclidean distance between a and b.
func Dist2(a, b Point) float64 {
	return a.Sub(b).Norm2()
}

// Coincident reports whether a and b lie within tolerance of each other.
// tol2 is the squared tolerance. A zero tolerance requires bitwise equal
// coordinates.
func Coincident(a, b Point, tol2 float64) bool {
	if tol2 == 0 {
		return sameBits(a.X, b.X) && sameBits(a.Y, b.Y) && sameBits(a.Z, b.Z)
	}
	return Dist2(a, b) <= tol2
}

func component(p Point, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}
