package seedforge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"
	"github.com/hupe1980/seedforge/blobstore"
	"github.com/hupe1980/seedforge/checkpoint"
	"github.com/hupe1980/seedforge/config"
	"github.com/hupe1980/seedforge/internal/filter"
	"github.com/hupe1980/seedforge/internal/game"
	"github.com/hupe1980/seedforge/internal/sched"
	"github.com/hupe1980/seedforge/progress"
)

// Result is one verified match.
type Result struct {
	// Seed is the matching seed.
	Seed string `json:"seed"`

	// Score is the sum of the weights of the satisfied should clauses.
	Score int `json:"score"`
}

// Space is the candidate population of a search.
type Space struct {
	provider      sched.Provider
	seedsPerBatch int64
}

// SequentialSpace enumerates every seed of the given length. Each batch
// covers 35^batchChars candidates sharing a fixed prefix.
func SequentialSpace(seedLen, batchChars int) (Space, error) {
	p, err := sched.NewSequential(seedLen, batchChars)
	if err != nil {
		return Space{}, err
	}
	return Space{provider: p, seedsPerBatch: p.BatchSize()}, nil
}

// ListSpace searches an explicit candidate list.
func ListSpace(seeds []string) (Space, error) {
	p, err := sched.NewList(seeds, 0)
	if err != nil {
		return Space{}, err
	}
	return Space{provider: p, seedsPerBatch: p.BatchSize()}, nil
}

// RandomSpace samples batches*batchSize uniformly random full-length
// candidates. Deterministic per runSeed, so a run can be reproduced.
func RandomSpace(runSeed uint64, batches int64, batchSize int) (Space, error) {
	p, err := sched.NewRandom(runSeed, batches, batchSize)
	if err != nil {
		return Space{}, err
	}
	return Space{provider: p, seedsPerBatch: p.BatchSize()}, nil
}

// Search evaluates a compiled filter against a candidate space on a fixed
// worker pool.
type Search struct {
	opts    options
	filter  *filter.Filter
	space   Space
	logger  *Logger
	metrics MetricsCollector

	sched   *sched.Scheduler
	cancel  context.CancelFunc
	tracker *progress.Tracker

	mu       sync.Mutex
	results  []Result
	started  atomic.Bool
	closed   atomic.Bool
	limitHit atomic.Bool
	ckptBusy atomic.Bool
}

// New compiles the filter document and prepares a search over the space.
// Nothing runs until Start or Run.
func New(doc *config.Document, space Space, optFns ...Option) (*Search, error) {
	if doc == nil {
		return nil, errors.New("seedforge: filter document is nil")
	}
	if space.provider == nil {
		return nil, errors.New("seedforge: empty candidate space")
	}

	f, err := doc.Compile()
	if err != nil {
		return nil, err
	}

	opts := options{
		logger:           NewLogger(nil),
		metricsCollector: NoopMetricsCollector{},
		checkpointEvery:  1024,
		progressRate:     4,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.runID == uuid.Nil {
		opts.runID = uuid.New()
	}
	if opts.resume && opts.checkpointMgr == nil {
		return nil, errors.New("seedforge: resume requires checkpoints")
	}

	s := &Search{
		opts:    opts,
		filter:  f,
		space:   space,
		logger:  opts.logger.WithRunID(opts.runID.String()),
		metrics: opts.metricsCollector,
	}
	return s, nil
}

// RunID returns the identity of this run.
func (s *Search) RunID() uuid.UUID { return s.opts.runID }

// MaxScore returns the highest score a match can reach under this filter.
func (s *Search) MaxScore() int { return s.filter.MaxScore() }

// Start launches the worker pool and returns immediately. Use Wait for the
// outcome.
func (s *Search) Start(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	skip, err := s.loadResume(ctx)
	if err != nil {
		return err
	}

	if s.opts.onProgress != nil {
		s.tracker = progress.New(s.opts.progressRate, s.space.seedsPerBatch, s.opts.onProgress)
		s.tracker.Start()
	}

	sc, err := sched.New(sched.Config{
		Workers:     s.opts.workers,
		Provider:    s.space.provider,
		Execute:     s.executeGroup,
		OnBatchDone: s.onBatchDone,
		Skip:        skip,
	})
	if err != nil {
		return err
	}
	s.sched = sc

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	if err := sc.Start(ctx); err != nil {
		cancel()
		return err
	}

	s.logger.LogStart(ctx, s.opts.workers, sc.Total())
	return nil
}

// Wait blocks until the search completes, hits its match limit, faults, or
// is closed, and returns the collected matches.
func (s *Search) Wait() ([]Result, error) {
	if !s.started.Load() {
		return nil, ErrNotStarted
	}
	err := s.sched.Wait()
	if s.limitHit.Load() && errors.Is(err, context.Canceled) {
		err = nil
	}

	if err == nil && s.sched.Status() == sched.StatusCompleted && s.opts.checkpointMgr != nil {
		// The run is finished, its checkpoint is obsolete.
		if derr := s.opts.checkpointMgr.Delete(context.Background(), s.opts.runID); derr != nil {
			s.logger.Warn("failed to delete finished checkpoint", "error", derr)
		}
	}

	results := s.Results()
	s.logger.LogFinish(context.Background(), len(results), s.sched.Completed(), err)
	return results, err
}

// Run starts the search and waits for it to finish.
func (s *Search) Run(ctx context.Context) ([]Result, error) {
	if err := s.Start(ctx); err != nil {
		return nil, err
	}
	return s.Wait()
}

// Pause blocks until every worker has parked. In-flight batches finish
// first.
func (s *Search) Pause() error {
	if !s.started.Load() {
		return ErrNotStarted
	}
	if err := s.sched.Pause(); err != nil {
		return err
	}
	// With every worker parked the cursor is stable, so a checkpoint
	// written now restarts exactly here.
	if s.opts.checkpointMgr != nil {
		s.saveCheckpoint()
	}
	return nil
}

// Resume releases paused workers.
func (s *Search) Resume() error {
	if !s.started.Load() {
		return ErrNotStarted
	}
	return s.sched.Resume()
}

// Status returns the run state.
func (s *Search) Status() sched.Status {
	if s.sched == nil {
		return sched.StatusIdle
	}
	return s.sched.Status()
}

// Results returns a snapshot of the matches collected so far.
func (s *Search) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

func (s *Search) loadResume(ctx context.Context) (*roaring.Bitmap, error) {
	if !s.opts.resume {
		return nil, nil
	}
	cp, err := s.opts.checkpointMgr.Load(ctx, s.opts.runID)
	if errors.Is(err, blobstore.ErrNotFound) {
		return nil, nil // first run under this ID
	}
	if err != nil {
		return nil, err
	}
	if err := cp.Validate(s.filter.Fingerprint(), s.space.provider.TotalBatches()); err != nil {
		return nil, err
	}
	set, err := cp.ExecutedSet()
	if err != nil {
		return nil, err
	}
	s.logger.LogResume(ctx, cp.Completed, cp.TotalBatches)
	return set, nil
}

// executeGroup evaluates one candidate group: vector prefilter for full
// groups, direct scalar verification for single seeds.
func (s *Search) executeGroup(ctx context.Context, seeds []string) error {
	if s.limitHit.Load() {
		return nil // drain remaining claims quickly
	}

	start := time.Now()
	if len(seeds) == 1 {
		s.verifySeed(ctx, seeds[0])
	} else {
		vec := game.NewVector(seeds)
		mask := s.filter.Prefilter(vec)
		s.metrics.RecordPrefilter(len(seeds), mask.Count())
		for i := range mask.Lanes {
			if i < len(seeds) {
				s.verifySeed(ctx, seeds[i])
			}
		}
	}
	s.metrics.RecordBatch(time.Since(start))
	return nil
}

func (s *Search) verifySeed(ctx context.Context, seed string) {
	v := s.filter.Verify(seed)
	s.metrics.RecordVerify(v.Match)
	if !v.Match {
		return
	}

	r := Result{Seed: seed, Score: v.Score}
	s.mu.Lock()
	if s.opts.matchLimit > 0 && len(s.results) >= s.opts.matchLimit {
		s.mu.Unlock()
		return
	}
	s.results = append(s.results, r)
	reached := s.opts.matchLimit > 0 && len(s.results) >= s.opts.matchLimit
	s.mu.Unlock()

	s.logger.LogMatch(ctx, r.Seed, r.Score)
	if s.opts.onMatch != nil {
		s.opts.onMatch(r)
	}
	if reached && s.limitHit.CompareAndSwap(false, true) {
		s.cancel()
	}
}

func (s *Search) onBatchDone(completed, total int64) {
	if s.tracker != nil {
		s.tracker.Observe(completed, total)
	}
	if s.opts.checkpointMgr != nil && completed%s.opts.checkpointEvery == 0 {
		s.saveCheckpoint()
	}
}

// saveCheckpoint writes the current cursor. At most one write is in flight;
// a tick that finds one running is dropped, the next interval covers it.
func (s *Search) saveCheckpoint() {
	if !s.ckptBusy.CompareAndSwap(false, true) {
		return
	}
	defer s.ckptBusy.Store(false)

	ctx := context.Background()
	start := time.Now()

	cp := &checkpoint.Checkpoint{
		RunID:        s.opts.runID,
		Fingerprint:  s.filter.Fingerprint(),
		TotalBatches: s.sched.Total(),
		NextBatch:    s.sched.NextBatch(),
		Completed:    s.sched.Completed(),
	}
	err := cp.SetExecuted(s.sched.Executed())
	if err == nil {
		err = s.opts.checkpointMgr.Save(ctx, cp)
	}
	if err != nil {
		err = fmt.Errorf("seedforge: checkpoint: %w", err)
	}

	s.metrics.RecordCheckpoint(time.Since(start), err)
	s.logger.LogCheckpoint(ctx, cp.Completed, cp.TotalBatches, err)
}
