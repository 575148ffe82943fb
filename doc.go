// Package pointmerge merges spatially binned 3-D point sets.
//
// Producers fill one locator.Locator each, over a shared grid. Merge then
// combines them into a single destination in which coincident points
// (within the locator tolerance) share one id, and returns an IDRemap per
// source that translates the producer's ids into destination ids.
//
// # Quick Start
//
//	grid, _ := pointmerge.NewGrid(geom.Cube(0, 1), 0.05)
//	a, _ := locator.New(grid, 1e-6)
//	b, _ := locator.New(grid, 1e-6)
//	// ... a.InsertUnique(p, nil) / b.InsertUnique(p, nil) on each producer
//
//	res, err := pointmerge.Merge(ctx, []*locator.Locator{a, b},
//	    pointmerge.WithWorkers(8),
//	    pointmerge.WithValidation(true),
//	)
//	if err != nil {
//	    return err
//	}
//	defer res.Release()
//	dstID, _ := res.Remaps[1].Get(srcID)
//
// # Packages
//
//   - geom: points, bounds and the bin grid
//   - attribute: typed per-point attribute arrays
//   - locator: the binned point locator and its merge operations
//   - merge: the parallel merge driver
//   - snapshot: binary persistence of merged locators
//   - blobstore: local, S3 and MinIO blob storage for snapshots
//
// # Observability
//
// Merge logs through a slog-based Logger and reports to a MetricsCollector:
//
//	stats := &pointmerge.BasicMetricsCollector{}
//	res, err := pointmerge.Merge(ctx, sources,
//	    pointmerge.WithLogger(pointmerge.NewJSONLogger(slog.LevelInfo)),
//	    pointmerge.WithMetricsCollector(stats),
//	)
package pointmerge
