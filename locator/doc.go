// Package locator implements a uniform-grid spatial hash over 3-D points and
// the bucket-wise merge protocol used to fuse many per-worker locators into
// one deduplicated point set.
//
// # Populating a Locator
//
// Producers own their locator and insert single-threaded:
//
//	loc, _ := locator.New(grid, 1e-6, locator.WithAttributes(attrs))
//	id, isNew, err := loc.InsertUnique(p, attribute.Record{"T": {10}})
//
// # Merging
//
// A destination locator is merged from sources that share its grid:
//
//	dst.InitializeMerge()
//	dst.Reserve(totalPoints)                 // upper bound on merged points
//	remap := locator.NewIDRemap(src.NumPoints())
//	for b := range dst.NumBuckets() {        // may run in parallel, one writer per bucket
//	    _ = dst.Merge(src, b, dst.Attributes(), src.Attributes(), remap)
//	}
//	dst.FixSizeOfPointArray()
//
// Merge is safe to call concurrently as long as no two calls target the same
// destination bucket at the same time. Ids are claimed from a single atomic
// counter, so the ids assigned across buckets depend on scheduling; callers
// translate source ids through the IDRemap.
//
// Deduplication only happens within a bucket. Two coincident points that land
// in different buckets stay distinct, which is why the tolerance should not
// exceed the smallest bin edge (see DedupComplete).
//
// # Lifecycle
//
//	Empty ──InitializeMerge──▶ Initialized ──Merge──▶ Merging ──FixSizeOfPointArray──▶ Finalized
//	  ▲                             ▲                                                   │
//	  └── New                       └──────────────── InitializeMerge ──────────────────┘
//
// Finalized locators are read-only until InitializeMerge starts a new merge.
package locator
