package locator

import (
	"fmt"
	"math"

	"github.com/hupe1980/pointmerge/attribute"
	"github.com/hupe1980/pointmerge/geom"
)

// InitializeMerge prepares l to receive merged points: the id counter goes
// back to zero and all buckets are cleared. Grid, tolerance and attribute
// schema are kept. Must be called from a single goroutine before any Merge.
func (l *Locator) InitializeMerge() {
	l.counter.Reset()
	for b := range l.buckets {
		l.buckets[b] = l.buckets[b][:0]
	}
	l.points.Truncate()
	l.attrs.Finalize(0)
	l.state.Store(int32(StateInitialized))
}

// Reserve preallocates room for n points and attribute tuples. Merge never
// grows storage, so n must bound the number of merged points (the sum of the
// source point counts always does). Not safe during Merge.
func (l *Locator) Reserve(n int) {
	l.points.Reserve(n)
	l.attrs.Reserve(n)
}

// Capacity returns the number of points Merge can store without failing.
func (l *Locator) Capacity() int64 {
	c := l.points.Cap()
	for _, col := range l.attrs.Columns() {
		c = min(c, col.Cap())
	}
	return c
}

// Merge merges bucket b of src into bucket b of l, recording the new id of
// every source point of that bucket in remap. Points within tolerance of a
// point already in the destination bucket reuse its id; the others get
// consecutive fresh ids and keep their source order.
//
// When dstAttrs has arrays, the tuple of every new point is copied from
// srcAttrs. Both sets must have the same schema; pass nil for both to skip
// attributes.
//
// Merge may run concurrently for distinct buckets. On error the call has
// changed neither the id counter and buckets of l nor its state.
func (l *Locator) Merge(src *Locator, b int, dstAttrs, srcAttrs *attribute.Set, remap *IDRemap) error {
	if !l.grid.Equal(src.grid) {
		return fmt.Errorf("%w: %v/%v vs %v/%v", ErrLayoutMismatch,
			l.grid.Bounds(), l.grid.Divisions(), src.grid.Bounds(), src.grid.Divisions())
	}
	if b < 0 || b >= len(l.buckets) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrBucketOutOfRange, b, len(l.buckets))
	}
	if n := src.counter.Load(); remap.Len() < n {
		return fmt.Errorf("%w: length %d, source has %d points", ErrRemapTooSmall, remap.Len(), n)
	}
	if err := dstAttrs.CheckCompatible(srcAttrs); err != nil {
		return err
	}
	if err := l.beginMerge(); err != nil {
		return err
	}
	copyAttrs := dstAttrs.NumColumns() > 0

	srcIDs := src.buckets[b]
	if len(srcIDs) == 0 {
		return nil
	}

	// Resolve every source point against the destination bucket and the
	// points accepted earlier in this call. assign[i] >= 0 is an existing
	// destination id; -(k+1) refers to the k-th novel point.
	existing := l.buckets[b]
	assign := make([]int64, len(srcIDs))
	novel := make([]int, 0, len(srcIDs))
	for i, sID := range srcIDs {
		p, _ := src.points.At(sID)
		if id, _, ok := l.closestIn(existing, p); ok {
			assign[i] = id
			continue
		}
		if k, ok := src.closestNovel(srcIDs, novel, p, l.tol2); ok {
			assign[i] = -int64(k) - 1
			continue
		}
		assign[i] = -int64(len(novel)) - 1
		novel = append(novel, i)
	}

	if copyAttrs && len(novel) > 0 {
		srcCap := tupleCapacity(srcAttrs)
		for _, i := range novel {
			if srcIDs[i] >= srcCap {
				return fmt.Errorf("%w: source tuple %d, capacity %d",
					attribute.ErrTupleOutOfRange, srcIDs[i], srcCap)
			}
		}
	}

	limit := l.points.Cap()
	if copyAttrs {
		limit = min(limit, tupleCapacity(dstAttrs))
	}
	var first int64
	if n := int64(len(novel)); n > 0 {
		var ok bool
		first, ok = l.counter.Reserve(n, limit)
		if !ok {
			return fmt.Errorf("%w: bucket %d needs %d more points, capacity %d",
				ErrCapacityExceeded, b, n, limit)
		}
	}

	for k, i := range novel {
		sID := srcIDs[i]
		dID := first + int64(k)
		p, _ := src.points.At(sID)
		_ = l.points.Set(dID, p) // dID < limit
		l.appendID(b, dID)
		if copyAttrs {
			// Schema, destination and source ranges were checked above.
			_ = dstAttrs.CopyTuple(dID, srcAttrs, sID)
		}
	}

	for i, sID := range srcIDs {
		dID := assign[i]
		if dID < 0 {
			dID = first + (-dID - 1)
		}
		remap.ids[sID] = dID
	}
	return nil
}

// FixSizeOfPointArray publishes the merged length: the point array and the
// attribute arrays are trimmed to the number of ids handed out, and l
// becomes read-only. Call once all Merge calls have returned.
func (l *Locator) FixSizeOfPointArray() {
	n := l.counter.Load()
	l.points.Finalize(n - 1)
	l.attrs.Finalize(n)
	l.state.Store(int32(StateFinalized))
}

func (l *Locator) beginMerge() error {
	for {
		switch s := l.State(); s {
		case StateMerging:
			return nil
		case StateInitialized:
			if l.state.CompareAndSwap(int32(StateInitialized), int32(StateMerging)) {
				return nil
			}
		case StateFinalized:
			return ErrFinalized
		default:
			return fmt.Errorf("%w: state %s", ErrNotInitialized, s)
		}
	}
}

// closestNovel looks for a point coincident with p among the already
// accepted novel points. novel holds positions into ids.
func (l *Locator) closestNovel(ids []int64, novel []int, p geom.Point, tol2 float64) (int, bool) {
	best, bestD2 := -1, math.Inf(1)
	for k, i := range novel {
		q, _ := l.points.At(ids[i])
		if !geom.Coincident(p, q, tol2) {
			continue
		}
		if tol2 == 0 {
			return k, true
		}
		if d2 := geom.Dist2(p, q); d2 < bestD2 {
			best, bestD2 = k, d2
		}
	}
	return best, best >= 0
}

func tupleCapacity(s *attribute.Set) int64 {
	c := int64(-1)
	for _, col := range s.Columns() {
		if c < 0 || col.Cap() < c {
			c = col.Cap()
		}
	}
	return c
}
