// Package points provides the coordinate storage of a locator.
//
// An Array is preallocated with Reserve and then written concurrently by
// workers that each own a disjoint set of ids. It never reallocates while
// Set is in use, so concurrent writers only need distinct ids. The logical
// length is published once with Finalize.
package points

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pointmerge/geom"
)

// ErrCapacityExceeded is returned when a write addresses an id at or beyond
// the reserved capacity.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// Array is an id-addressed array of 3-D points.
type Array struct {
	data []geom.Point // len(data) is the capacity
	n    int64        // logical length
}

// New returns an array with the given initial capacity.
func New(capacity int) *Array {
	a := &Array{}
	a.Reserve(capacity)
	return a
}

// Reserve grows the capacity to at least n. Existing points are kept.
// It must not be called concurrently with Set.
func (a *Array) Reserve(n int) {
	if n <= len(a.data) {
		return
	}
	grown := make([]geom.Point, n)
	copy(grown, a.data)
	a.data = grown
}

// Cap returns the reserved capacity.
func (a *Array) Cap() int64 {
	return int64(len(a.data))
}

// Len returns the logical length set by Finalize or Append.
func (a *Array) Len() int64 {
	return a.n
}

// Set writes p at id. Concurrent calls with distinct ids are safe.
func (a *Array) Set(id int64, p geom.Point) error {
	if id < 0 || id >= int64(len(a.data)) {
		return fmt.Errorf("%w: id %d, capacity %d", ErrCapacityExceeded, id, len(a.data))
	}
	a.data[id] = p
	return nil
}

// Append writes p at id, growing the capacity geometrically if needed, and
// extends the logical length to cover id. Single-writer only.
func (a *Array) Append(id int64, p geom.Point) error {
	if id < 0 {
		return fmt.Errorf("%w: id %d", ErrCapacityExceeded, id)
	}
	if id >= int64(len(a.data)) {
		a.Reserve(max(int(id)+1, 2*len(a.data), 16))
	}
	a.data[id] = p
	if id >= a.n {
		a.n = id + 1
	}
	return nil
}

// At returns the point stored at id. Ids beyond the capacity yield false.
func (a *Array) At(id int64) (geom.Point, bool) {
	if id < 0 || id >= int64(len(a.data)) {
		return geom.Point{}, false
	}
	return a.data[id], true
}

// Finalize records the logical length as maxID + 1. A maxID of -1 empties
// the array.
func (a *Array) Finalize(maxID int64) {
	a.n = min(max(maxID+1, 0), int64(len(a.data)))
}

// Slice returns the points [0, Len()). The slice aliases the array and must
// be treated as read-only.
func (a *Array) Slice() []geom.Point {
	return a.data[:a.n]
}

// Truncate drops the logical contents without releasing capacity.
func (a *Array) Truncate() {
	a.n = 0
}
