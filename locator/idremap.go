package locator

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Unassigned marks a source id that no merge has mapped yet.
const Unassigned int64 = -1

// IDRemap maps the ids of one source locator to destination ids.
//
// Entries are written by Merge. Merges of different buckets write disjoint
// entries, so one IDRemap may be shared by concurrent merges of the same
// source.
type IDRemap struct {
	ids []int64
}

// NewIDRemap returns a remap for n source ids, all Unassigned.
func NewIDRemap(n int64) *IDRemap {
	r := &IDRemap{ids: make([]int64, n)}
	for i := range r.ids {
		r.ids[i] = Unassigned
	}
	return r
}

// Len returns the number of source ids the remap can hold.
func (r *IDRemap) Len() int64 {
	if r == nil {
		return 0
	}
	return int64(len(r.ids))
}

// Get returns the destination id of a source id.
func (r *IDRemap) Get(srcID int64) (int64, bool) {
	if srcID < 0 || srcID >= r.Len() || r.ids[srcID] == Unassigned {
		return Unassigned, false
	}
	return r.ids[srcID], true
}

// Slice returns the raw mapping. Unassigned entries hold Unassigned.
func (r *IDRemap) Slice() []int64 {
	if r == nil {
		return nil
	}
	return r.ids
}

// Translate maps a list of source ids, such as cell connectivity, to
// destination ids.
func (r *IDRemap) Translate(srcIDs []int64) ([]int64, error) {
	out := make([]int64, len(srcIDs))
	for i, s := range srcIDs {
		d, ok := r.Get(s)
		if !ok {
			return nil, fmt.Errorf("source id %d has no destination", s)
		}
		out[i] = d
	}
	return out, nil
}

// Missing returns the set of source ids below n that are still unassigned.
func (r *IDRemap) Missing(n int64) *bitset.BitSet {
	missing := bitset.New(uint(max(n, 0)))
	for id := range n {
		if _, ok := r.Get(id); !ok {
			missing.Set(uint(id))
		}
	}
	return missing
}

// Targets returns the set of destination ids referenced by the remap.
func (r *IDRemap) Targets() *bitset.BitSet {
	targets := bitset.New(0)
	for _, d := range r.Slice() {
		if d >= 0 {
			targets.Set(uint(d))
		}
	}
	return targets
}

// Covers reports whether every id of src has been mapped.
func (r *IDRemap) Covers(src *Locator) bool {
	return r.Missing(src.NumPoints()).None()
}
