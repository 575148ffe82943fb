// Package attribute implements per-point attribute arrays and the sets that
// travel with a locator's points.
//
// Each array stores fixed-width tuples of one numeric element type:
//
//	temps := attribute.NewArray[float64]("T", 1)
//	normals := attribute.NewArray[float32]("Normals", 3)
//	set, _ := attribute.NewSet(temps, normals)
//
// Element types form a closed set (Float32, Float64, Int32, Int64). Two sets
// are compatible when they hold the same names with the same element types
// and component counts, independent of insertion order; compatibility is
// checked through a 64-bit schema fingerprint.
//
// # Concurrency
//
// After Reserve, CopyTuple and Array.SetTuple may be called concurrently as
// long as every caller writes a distinct destination id. Set.SetTuple grows
// arrays on demand and is single-writer only.
package attribute
