// Package testutil provides testing utilities for pointmerge.
//
// This package is intended for use in tests and benchmarks only.
// It generates reproducible point clouds and the partitions a set of
// producers would hold, and computes the expected merge result by brute
// force.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformPoints(1000, geom.Cube(0, 1))
//	pts = rng.ClusteredPoints(1000, geom.Cube(0, 1), 8, 0.01)
//
// # Producer Partitions
//
//	parts := rng.Overlapping(pts, 4, 0.1) // 4 sources, 10% shared points
//	want := testutil.DistinctCount(pts, tol)
package testutil
