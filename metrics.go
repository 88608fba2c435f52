package seedforge

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBatch is called after each executed candidate group with the
	// total time taken. Evaluation itself cannot fail; faults surface
	// through the scheduler, not here.
	RecordBatch(duration time.Duration)

	// RecordPrefilter is called after each vector prefilter pass.
	// lanes is the group size, survivors the lanes forwarded to scalar
	// verification.
	RecordPrefilter(lanes, survivors int)

	// RecordVerify is called after each scalar verification.
	RecordVerify(match bool)

	// RecordCheckpoint is called after each checkpoint write.
	RecordCheckpoint(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBatch(time.Duration)             {}
func (NoopMetricsCollector) RecordPrefilter(int, int)              {}
func (NoopMetricsCollector) RecordVerify(bool)                     {}
func (NoopMetricsCollector) RecordCheckpoint(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BatchCount       atomic.Int64
	BatchTotalNanos  atomic.Int64
	PrefilterLanes   atomic.Int64
	PrefilterPassed  atomic.Int64
	VerifyCount      atomic.Int64
	VerifyMatches    atomic.Int64
	CheckpointCount  atomic.Int64
	CheckpointErrors atomic.Int64
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(duration time.Duration) {
	b.BatchCount.Add(1)
	b.BatchTotalNanos.Add(duration.Nanoseconds())
}

// RecordPrefilter implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPrefilter(lanes, survivors int) {
	b.PrefilterLanes.Add(int64(lanes))
	b.PrefilterPassed.Add(int64(survivors))
}

// RecordVerify implements MetricsCollector.
func (b *BasicMetricsCollector) RecordVerify(match bool) {
	b.VerifyCount.Add(1)
	if match {
		b.VerifyMatches.Add(1)
	}
}

// RecordCheckpoint implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCheckpoint(duration time.Duration, err error) {
	b.CheckpointCount.Add(1)
	if err != nil {
		b.CheckpointErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BatchCount:       b.BatchCount.Load(),
		BatchAvgNanos:    b.getAvgBatchNanos(),
		PrefilterLanes:   b.PrefilterLanes.Load(),
		PrefilterPassed:  b.PrefilterPassed.Load(),
		VerifyCount:      b.VerifyCount.Load(),
		VerifyMatches:    b.VerifyMatches.Load(),
		CheckpointCount:  b.CheckpointCount.Load(),
		CheckpointErrors: b.CheckpointErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgBatchNanos() int64 {
	count := b.BatchCount.Load()
	if count == 0 {
		return 0
	}
	return b.BatchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BatchCount       int64
	BatchAvgNanos    int64
	PrefilterLanes   int64
	PrefilterPassed  int64
	VerifyCount      int64
	VerifyMatches    int64
	CheckpointCount  int64
	CheckpointErrors int64
}
