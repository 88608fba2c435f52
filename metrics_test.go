package seedforge

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollectorSnapshot(t *testing.T) {
	var c BasicMetricsCollector

	c.RecordBatch(100 * time.Millisecond)
	c.RecordBatch(300 * time.Millisecond)
	c.RecordPrefilter(8, 3)
	c.RecordPrefilter(8, 0)
	c.RecordVerify(true)
	c.RecordVerify(false)
	c.RecordVerify(false)
	c.RecordCheckpoint(time.Millisecond, nil)
	c.RecordCheckpoint(time.Millisecond, errors.New("write failed"))

	stats := c.GetStats()
	assert.Equal(t, int64(2), stats.BatchCount)
	assert.Equal(t, (200 * time.Millisecond).Nanoseconds(), stats.BatchAvgNanos)
	assert.Equal(t, int64(16), stats.PrefilterLanes)
	assert.Equal(t, int64(3), stats.PrefilterPassed)
	assert.Equal(t, int64(3), stats.VerifyCount)
	assert.Equal(t, int64(1), stats.VerifyMatches)
	assert.Equal(t, int64(2), stats.CheckpointCount)
	assert.Equal(t, int64(1), stats.CheckpointErrors)
}

func TestBasicMetricsCollectorEmpty(t *testing.T) {
	var c BasicMetricsCollector
	assert.Equal(t, BasicMetricsStats{}, c.GetStats())
}
