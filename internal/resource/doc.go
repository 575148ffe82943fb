// Package resource governs the shared resources of merge runs and snapshot
// IO.
//
//   - Memory: fail-fast budget for destination preallocation
//   - Workers: slots bounding concurrent merge tasks across runs
//   - IO: token bucket for snapshot reads and writes
//
// A memory reservation is taken before a destination locator is reserved and
// released when the run fails or the caller drops the result:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 30})
//	if err := rc.AcquireMemory(need); err != nil {
//	    return err // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(need)
//
// Snapshot streams are throttled with the rate-limited wrappers:
//
//	w := resource.NewRateLimitedWriter(ctx, f, rc)
//
// All methods are safe for concurrent use, and a nil *Controller imposes no
// limits.
package resource
