package merge

import "sync"

const maxLockStripes = 4096

// bucketLocks serializes merges into the same destination bucket. Buckets
// share stripes, so a holder must never take a second lock.
type bucketLocks struct {
	stripes []sync.Mutex
}

func newBucketLocks(buckets int) *bucketLocks {
	return &bucketLocks{stripes: make([]sync.Mutex, max(1, min(buckets, maxLockStripes)))}
}

func (l *bucketLocks) lock(b int) *sync.Mutex {
	mu := &l.stripes[b%len(l.stripes)]
	mu.Lock()
	return mu
}
