package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// fakeClock drives the tracker through deterministic time steps.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker(emit func(Snapshot)) (*Tracker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)}
	tr := New(4, 100, emit)
	tr.limiter = rate.NewLimiter(rate.Inf, 1)
	tr.now = clock.now
	tr.Start()
	return tr, clock
}

func TestPlaceholderBeforeMinSamples(t *testing.T) {
	var snaps []Snapshot
	tr, clock := newTestTracker(func(s Snapshot) { snaps = append(snaps, s) })

	clock.advance(time.Second)
	tr.Observe(10, 1000)
	clock.advance(time.Second)
	tr.Observe(20, 1000)

	require.Len(t, snaps, 2)
	for _, s := range snaps {
		assert.False(t, s.ETAKnown)
		assert.Equal(t, Placeholder, s.ETAText)
	}
	assert.InDelta(t, 0.02, snaps[1].Fraction, 1e-12)
}

func TestETAFromSteadyRate(t *testing.T) {
	var last Snapshot
	tr, clock := newTestTracker(func(s Snapshot) { last = s })

	// 10 batches per second against a total of 1000: the run needs 100
	// seconds, so after 4 seconds roughly 96 remain.
	for i := int64(1); i <= 4; i++ {
		clock.advance(time.Second)
		tr.Observe(i*10, 1000)
	}

	require.True(t, last.ETAKnown)
	assert.InDelta(t, 96, last.ETA.Seconds(), 1.0)
	assert.Equal(t, "00:01:36", last.ETAText)

	// 10 batches of 100 seeds per second.
	assert.InDelta(t, 1000, last.SeedsPerSecond, 1e-6)
}

func TestETACompleted(t *testing.T) {
	var last Snapshot
	tr, clock := newTestTracker(func(s Snapshot) { last = s })

	clock.advance(time.Second)
	tr.Observe(1000, 1000)

	require.True(t, last.ETAKnown)
	assert.Equal(t, time.Duration(0), last.ETA)
	assert.Equal(t, "00:00:00", last.ETAText)
	assert.Equal(t, 1.0, last.Fraction)
}

func TestETASanityBound(t *testing.T) {
	var last Snapshot
	tr, clock := newTestTracker(func(s Snapshot) { last = s })

	// One batch out of a space so large the extrapolation exceeds a year.
	total := int64(1) << 62
	for i := int64(1); i <= 4; i++ {
		clock.advance(time.Second)
		tr.Observe(i, total)
	}

	assert.False(t, last.ETAKnown)
	assert.Equal(t, Placeholder, last.ETAText)
}

func TestThrottle(t *testing.T) {
	count := 0
	clock := &fakeClock{t: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)}
	tr := New(4, 1, func(Snapshot) { count++ })
	tr.now = clock.now
	tr.Start()

	// The real limiter allows one immediate emission and throttles the
	// burst that follows.
	for i := int64(1); i <= 100; i++ {
		tr.Observe(i, 1000)
	}
	assert.Equal(t, 1, count)
}

func TestNilEmit(t *testing.T) {
	tr := New(4, 1, nil)
	tr.Start()
	assert.NotPanics(t, func() { tr.Observe(1, 10) })
}

func TestMedianThroughputIgnoresOutlier(t *testing.T) {
	var last Snapshot
	tr, clock := newTestTracker(func(s Snapshot) { last = s })

	// Steady 10 batches/sec with one stalled observation in the middle.
	completed := int64(0)
	for i := 0; i < 6; i++ {
		clock.advance(time.Second)
		if i == 3 {
			completed += 1 // stall
		} else {
			completed += 10
		}
		tr.Observe(completed, 10000)
	}

	// Median rate stays at the steady 10 batches * 100 seeds.
	assert.InDelta(t, 1000, last.SeedsPerSecond, 1e-6)
}

func TestFormatETA(t *testing.T) {
	assert.Equal(t, "00:00:05", formatETA(5*time.Second))
	assert.Equal(t, "00:02:30", formatETA(150*time.Second))
	assert.Equal(t, "03:25:45", formatETA(3*time.Hour+25*time.Minute+45*time.Second))
	// Hours clamp at the two-digit display limit.
	assert.Equal(t, "99:00:00", formatETA(200*time.Hour))
}
