// Package geom provides the geometry primitives shared by locators: points,
// axis-aligned bounds, and the uniform bucket grid that maps a point to a
// linear bucket index.
//
// # Bucket Mapping
//
// A Grid divides its bounds into D[0]·D[1]·D[2] equally sized bins. Bins are
// linearized as
//
//	b = i + j·D[0] + k·D[0]·D[1]
//
// A point lying exactly on an interior bin boundary belongs to the lower-index
// bin. Points outside the bounds are clamped into the nearest edge bin, so
// every finite point maps to some bucket.
//
// # Choosing Divisions
//
//	b := geom.BoundsOf(pointsA, pointsB)
//	d, _ := geom.DivisionsForBinSize(b, 0.25)
//	g, _ := geom.NewGrid(b, d)
//
// Deduplication performed by locators only looks inside a single bucket, so the
// merge tolerance should not exceed Grid.MinBinEdge.
package geom
