package seedforge

import (
	"github.com/google/uuid"
	"github.com/hupe1980/seedforge/checkpoint"
	"github.com/hupe1980/seedforge/progress"
)

type options struct {
	workers          int
	runID            uuid.UUID
	logger           *Logger
	metricsCollector MetricsCollector
	matchLimit       int
	onMatch          func(Result)
	onProgress       func(progress.Snapshot)
	progressRate     float64
	checkpointMgr    *checkpoint.Manager
	checkpointEvery  int64
	resume           bool
}

// Option configures search behavior.
type Option func(*options)

// WithWorkers sets the fixed worker count. The default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRunID pins the run identity. Required to resume an earlier run; a
// fresh run gets a random ID by default.
func WithRunID(id uuid.UUID) Option {
	return func(o *options) {
		o.runID = id
	}
}

// WithLogger configures a custom logger. Pass nil to keep the default
// stderr text logger; use NoopLogger() to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsCollector configures a metrics collector for monitoring the
// run. Pass nil to disable metrics collection.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(o *options) {
		if collector == nil {
			collector = NoopMetricsCollector{}
		}
		o.metricsCollector = collector
	}
}

// WithMatchLimit stops the search after n verified matches. 0 means
// unlimited.
func WithMatchLimit(n int) Option {
	return func(o *options) {
		o.matchLimit = n
	}
}

// WithMatchCallback invokes fn for every verified match, concurrently from
// worker goroutines. fn must be safe for concurrent use.
func WithMatchCallback(fn func(Result)) Option {
	return func(o *options) {
		o.onMatch = fn
	}
}

// WithProgress invokes fn with throttled progress snapshots, at most
// maxPerSecond times per second. maxPerSecond <= 0 selects 4.
func WithProgress(fn func(progress.Snapshot), maxPerSecond float64) Option {
	return func(o *options) {
		o.onProgress = fn
		o.progressRate = maxPerSecond
	}
}

// WithCheckpoints writes a checkpoint through mgr every interval completed
// batches. Combined with WithRunID and WithResume, an interrupted run
// continues where it left off.
func WithCheckpoints(mgr *checkpoint.Manager, interval int64) Option {
	return func(o *options) {
		o.checkpointMgr = mgr
		if interval > 0 {
			o.checkpointEvery = interval
		}
	}
}

// WithResume loads the run's checkpoint before starting and skips every
// batch it records as executed. Requires WithCheckpoints and WithRunID.
func WithResume() Option {
	return func(o *options) {
		o.resume = true
	}
}
