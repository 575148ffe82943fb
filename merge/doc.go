// Package merge drives the bucket-parallel merge of many source locators
// into one destination.
//
// A Merger validates the inputs, preallocates the destination within the
// memory budget, fans the per-bucket merges out to a bounded worker pool and
// finalizes the destination:
//
//	m := merge.New(merge.WithWorkers(8))
//	res, err := m.Run(ctx, dst, sources)
//	if err != nil {
//	    return err
//	}
//	defer res.Release()
//	cells, _ := res.Remaps[0].Translate(srcCell)
//
// Two dispatch strategies keep every destination bucket single-writer:
//
//   - StrategyStatic assigns bucket b to worker b mod W. Each worker merges
//     all sources into its buckets, in source order.
//   - StrategyPerSource runs one task per source. Tasks walk every bucket and
//     serialize on a striped bucket lock table.
//
// Ids handed out by a parallel run depend on scheduling. The set of merged
// coordinates does not, and every source id reaches its point through the
// returned remaps. MergeSequential is the deterministic reference.
package merge
