// Package atomicid provides the 64-bit id allocator shared by all writers of
// a locator.
package atomicid

import "sync/atomic"

// Counter hands out dense, zero-based ids. The zero value is ready to use.
//
// All methods are safe for concurrent use. Ids returned by FetchAdd and
// Reserve are unique; a writer may use its claimed slots without further
// synchronization.
type Counter struct {
	next atomic.Int64
}

// Load returns the number of ids handed out so far.
func (c *Counter) Load() int64 {
	return c.next.Load()
}

// FetchAdd claims k consecutive ids and returns the first one.
func (c *Counter) FetchAdd(k int64) int64 {
	return c.next.Add(k) - k
}

// Reserve claims k consecutive ids only if the new total stays within limit.
// It returns the first claimed id and true, or (0, false) without changing
// the counter.
func (c *Counter) Reserve(k, limit int64) (int64, bool) {
	for {
		cur := c.next.Load()
		if cur+k > limit {
			return 0, false
		}
		if c.next.CompareAndSwap(cur, cur+k) {
			return cur, true
		}
	}
}

// Reset sets the counter back to zero. It must not race with FetchAdd or
// Reserve.
func (c *Counter) Reset() {
	c.next.Store(0)
}

// Restore sets the counter to n. Used when rebuilding a locator from
// persisted state.
func (c *Counter) Restore(n int64) {
	c.next.Store(n)
}
