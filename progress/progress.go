// Package progress computes and throttles user-facing search progress:
// percentage complete, throughput, and an estimated time remaining with a
// defined fallback when the estimate is not trustworthy.
package progress

import (
	"math"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/time/rate"
	"gonum.org/v1/gonum/stat"
)

// Placeholder is reported while the sample size is too small or the ETA
// fails the sanity bound.
const Placeholder = "--:--:--"

// maxSaneETA caps the reported estimate; anything beyond it degrades to the
// placeholder instead of showing a multi-decade countdown.
const maxSaneETA = 365 * 24 * time.Hour

// minSamples is the number of observations required before extrapolating.
const minSamples = 3

// sampleWindow bounds the regression window so the estimate tracks the
// current rate rather than the whole run's history.
const sampleWindow = 120

// Snapshot is one throttled progress observation.
type Snapshot struct {
	// Fraction is completed work in [0, 1].
	Fraction float64

	// SeedsPerSecond is the smoothed throughput, 0 while unknown.
	SeedsPerSecond float64

	// ETA is the estimated remaining time; valid only when ETAKnown.
	ETA time.Duration

	// ETAKnown reports whether ETA passed the sanity checks. When false,
	// display ETAText instead.
	ETAKnown bool

	// ETAText is the display form of the estimate: HH:MM:SS or the
	// placeholder.
	ETAText string
}

// Tracker accumulates batch completions and emits throttled snapshots.
// Safe for concurrent use by many workers.
type Tracker struct {
	mu          sync.Mutex
	limiter     *rate.Limiter
	start       time.Time
	seedsPerJob float64
	elapsed     []float64 // seconds since start, per sample
	fractions   []float64 // completed fraction, per sample
	rates       []float64 // seeds/sec deltas, per sample
	lastTime    time.Time
	lastDone    int64
	emit        func(Snapshot)
	now         func() time.Time
}

// New creates a Tracker emitting at most maxPerSecond snapshots per second
// through emit. seedsPerBatch scales batch counts to seed throughput.
func New(maxPerSecond float64, seedsPerBatch int64, emit func(Snapshot)) *Tracker {
	if maxPerSecond <= 0 {
		maxPerSecond = 4
	}
	t := &Tracker{
		limiter:     rate.NewLimiter(rate.Limit(maxPerSecond), 1),
		seedsPerJob: float64(seedsPerBatch),
		emit:        emit,
		now:         time.Now,
	}
	return t
}

// Start marks the beginning of the run.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.start = t.now()
	t.lastTime = t.start
	t.lastDone = 0
	t.elapsed = t.elapsed[:0]
	t.fractions = t.fractions[:0]
	t.rates = t.rates[:0]
}

// Observe records a completed-batch count. Snapshots are emitted at most at
// the configured rate; between emissions the observation is folded into the
// sample window.
func (t *Tracker) Observe(completed, total int64) {
	if t.emit == nil || !t.limiter.Allow() {
		return
	}

	t.mu.Lock()
	now := t.now()
	elapsed := now.Sub(t.start).Seconds()
	frac := 0.0
	if total > 0 {
		frac = float64(completed) / float64(total)
	}

	if dt := now.Sub(t.lastTime).Seconds(); dt > 0 {
		t.rates = append(t.rates, float64(completed-t.lastDone)*t.seedsPerJob/dt)
		if len(t.rates) > sampleWindow {
			t.rates = t.rates[1:]
		}
	}
	t.lastTime = now
	t.lastDone = completed

	t.elapsed = append(t.elapsed, elapsed)
	t.fractions = append(t.fractions, frac)
	if len(t.elapsed) > sampleWindow {
		t.elapsed = t.elapsed[1:]
		t.fractions = t.fractions[1:]
	}

	snap := t.snapshotLocked(frac)
	t.mu.Unlock()

	t.emit(snap)
}

func (t *Tracker) snapshotLocked(frac float64) Snapshot {
	snap := Snapshot{Fraction: frac, ETAText: Placeholder}

	if len(t.rates) > 0 {
		// The median is robust against the uneven batch durations of the
		// scalar-verification-heavy batches.
		if m, err := stats.Median(t.rates); err == nil && !math.IsNaN(m) {
			snap.SeedsPerSecond = m
		}
	}

	if len(t.elapsed) >= minSamples && frac > 0 && frac < 1 {
		// Least-squares fit of fraction over elapsed time, through the
		// origin: the slope is progress per second.
		_, slope := stat.LinearRegression(t.elapsed, t.fractions, nil, true)
		if slope > 0 && !math.IsNaN(slope) && !math.IsInf(slope, 0) {
			eta := time.Duration((1 - frac) / slope * float64(time.Second))
			if eta >= 0 && eta <= maxSaneETA {
				snap.ETA = eta
				snap.ETAKnown = true
				snap.ETAText = formatETA(eta)
			}
		}
	}
	if frac >= 1 {
		snap.ETA = 0
		snap.ETAKnown = true
		snap.ETAText = formatETA(0)
	}
	return snap
}

func formatETA(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return pad2(h) + ":" + pad2(m) + ":" + pad2(s)
}

func pad2(n int) string {
	if n > 99 {
		n = 99
	}
	if n < 10 {
		return "0" + string(rune('0'+n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}
