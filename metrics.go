package pointmerge

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Implementations must be safe for concurrent use: RecordBucketMerge is
// called from the merge workers.
type MetricsCollector interface {
	// RecordMerge is called after each merge run. newPoints is the number
	// of distinct points in the destination, err is nil if successful.
	RecordMerge(sources int, newPoints int64, duration time.Duration, err error)

	// RecordBucketMerge is called after a source bucket has been merged.
	// novel is the number of destination points the bucket added.
	RecordBucketMerge(bucket, novel int)

	// RecordValidate is called after each post-merge validation.
	RecordValidate(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMerge(int, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordBucketMerge(int, int)                  {}
func (NoopMetricsCollector) RecordValidate(time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	MergeCount         atomic.Int64
	MergeErrors        atomic.Int64
	MergeTotalNanos    atomic.Int64
	SourcesMerged      atomic.Int64
	PointsMerged       atomic.Int64
	BucketMerges       atomic.Int64
	NovelPoints        atomic.Int64
	ValidateCount      atomic.Int64
	ValidateErrors     atomic.Int64
	ValidateTotalNanos atomic.Int64
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(sources int, newPoints int64, duration time.Duration, err error) {
	b.MergeCount.Add(1)
	b.MergeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MergeErrors.Add(1)
		return
	}
	b.SourcesMerged.Add(int64(sources))
	b.PointsMerged.Add(newPoints)
}

// RecordBucketMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBucketMerge(_, novel int) {
	b.BucketMerges.Add(1)
	b.NovelPoints.Add(int64(novel))
}

// RecordValidate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordValidate(duration time.Duration, err error) {
	b.ValidateCount.Add(1)
	b.ValidateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ValidateErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		MergeCount:       b.MergeCount.Load(),
		MergeErrors:      b.MergeErrors.Load(),
		MergeAvgNanos:    avg(b.MergeTotalNanos.Load(), b.MergeCount.Load()),
		SourcesMerged:    b.SourcesMerged.Load(),
		PointsMerged:     b.PointsMerged.Load(),
		BucketMerges:     b.BucketMerges.Load(),
		NovelPoints:      b.NovelPoints.Load(),
		ValidateCount:    b.ValidateCount.Load(),
		ValidateErrors:   b.ValidateErrors.Load(),
		ValidateAvgNanos: avg(b.ValidateTotalNanos.Load(), b.ValidateCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	MergeCount       int64
	MergeErrors      int64
	MergeAvgNanos    int64
	SourcesMerged    int64
	PointsMerged     int64
	BucketMerges     int64
	NovelPoints      int64
	ValidateCount    int64
	ValidateErrors   int64
	ValidateAvgNanos int64
}
