package sched

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"
)

// ErrSchedulerClosed is returned when an operation is attempted on a
// scheduler that has been closed.
var ErrSchedulerClosed = errors.New("sched: scheduler closed")

// ErrNotRunning is returned by Pause when the scheduler is not running, and
// by Resume when it is not paused.
var ErrNotRunning = errors.New("sched: scheduler not in expected state")

// BatchFunc executes one candidate group of a batch. seeds holds 1 to
// lane.Width equal-length candidates; a one-seed group bypasses
// vectorization.
type BatchFunc func(ctx context.Context, seeds []string) error

// Config configures a Scheduler.
type Config struct {
	// Workers is the fixed worker count. <= 0 selects GOMAXPROCS.
	Workers int

	// Provider supplies candidate batches.
	Provider Provider

	// Execute runs one candidate group. Called concurrently from all
	// workers; each call sees only memory owned by its worker.
	Execute BatchFunc

	// OnBatchDone, if set, is called after every completed batch with the
	// completed count and the total. Called concurrently.
	OnBatchDone func(completed, total int64)

	// Skip, if non-nil, marks batches already completed by a previous run;
	// they are counted but not executed.
	Skip *roaring.Bitmap
}

// Scheduler owns the shared batch cursor and the worker pool.
type Scheduler struct {
	cfg     Config
	total   int64
	status  atomic.Int32
	next    atomic.Int64
	done    atomic.Int64
	mu      sync.Mutex
	cond    *sync.Cond
	live    int
	parked  int
	execMu  sync.Mutex
	execSet *roaring.Bitmap
	eg      *errgroup.Group
	cancel  context.CancelFunc
	started bool
	closed  bool
}

// New creates a Scheduler. The configuration is validated eagerly so a
// malformed run never starts.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Provider == nil {
		return nil, errors.New("sched: provider is nil")
	}
	if cfg.Execute == nil {
		return nil, errors.New("sched: execute func is nil")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	s := &Scheduler{
		cfg:     cfg,
		total:   cfg.Provider.TotalBatches(),
		execSet: roaring.New(),
	}
	s.cond = sync.NewCond(&s.mu)
	return s, nil
}

// Status returns the current run state.
func (s *Scheduler) Status() Status { return Status(s.status.Load()) }

// Completed returns the number of completed batches.
func (s *Scheduler) Completed() int64 { return s.done.Load() }

// Total returns the total batch count of the run.
func (s *Scheduler) Total() int64 { return s.total }

// NextBatch returns the next unclaimed batch index.
func (s *Scheduler) NextBatch() int64 { return s.next.Load() }

// Executed returns a snapshot of the executed-batch set.
func (s *Scheduler) Executed() *roaring.Bitmap {
	s.execMu.Lock()
	defer s.execMu.Unlock()
	return s.execSet.Clone()
}

// Start launches the worker pool. It returns immediately; use Wait for the
// outcome.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSchedulerClosed
	}
	if s.started {
		return errors.New("sched: already started")
	}
	s.started = true
	s.status.Store(int32(StatusRunning))

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.eg, ctx = errgroup.WithContext(ctx)
	s.live = s.cfg.Workers
	for i := 0; i < s.cfg.Workers; i++ {
		s.eg.Go(func() error {
			defer s.workerExit()
			return s.workerLoop(ctx)
		})
	}
	return nil
}

// Wait blocks until the run completes, faults, or is closed, and returns
// the first worker error, if any.
func (s *Scheduler) Wait() error {
	if s.eg == nil {
		return errors.New("sched: not started")
	}
	err := s.eg.Wait()
	if err != nil && s.Status() != StatusStopping {
		s.status.Store(int32(StatusFaulted))
	}
	return err
}

func (s *Scheduler) workerExit() {
	s.mu.Lock()
	s.live--
	s.cond.Broadcast()
	s.mu.Unlock()
}

func (s *Scheduler) workerLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		switch s.Status() {
		case StatusPaused:
			s.park()
			continue
		case StatusStopping:
			return nil
		case StatusCompleted:
			return nil
		}

		idx := s.next.Add(1) - 1
		if idx >= s.total {
			s.status.CompareAndSwap(int32(StatusRunning), int32(StatusCompleted))
			s.mu.Lock()
			s.cond.Broadcast()
			s.mu.Unlock()
			return nil
		}

		if s.cfg.Skip != nil && idx <= int64(^uint32(0)) && s.cfg.Skip.Contains(uint32(idx)) {
			s.finishBatch(idx)
			continue
		}

		if err := s.runBatch(ctx, idx); err != nil {
			return err
		}
		s.finishBatch(idx)
	}
}

// park is the pause rendezvous: the worker announces arrival, then blocks
// at the resume barrier until the status leaves Paused.
func (s *Scheduler) park() {
	s.mu.Lock()
	s.parked++
	s.cond.Broadcast()
	for Status(s.status.Load()) == StatusPaused {
		s.cond.Wait()
	}
	s.parked--
	s.mu.Unlock()
}

// runBatch executes one batch, converting a panic in filter or generator
// code into an error so the run fails fast instead of losing a batch.
func (s *Scheduler) runBatch(ctx context.Context, idx int64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sched: batch %d panicked: %v", idx, r)
		}
	}()
	return s.cfg.Provider.Walk(idx, func(seeds []string) error {
		return s.cfg.Execute(ctx, seeds)
	})
}

func (s *Scheduler) finishBatch(idx int64) {
	if idx <= int64(^uint32(0)) {
		s.execMu.Lock()
		s.execSet.Add(uint32(idx))
		s.execMu.Unlock()
	}
	done := s.done.Add(1)
	if s.cfg.OnBatchDone != nil {
		s.cfg.OnBatchDone(done, s.total)
	}
}

// Pause requests a cooperative pause and blocks until every live worker has
// parked. Pause takes effect at batch granularity: in-flight batches finish
// first.
func (s *Scheduler) Pause() error {
	if !s.status.CompareAndSwap(int32(StatusRunning), int32(StatusPaused)) {
		return fmt.Errorf("%w: status %s", ErrNotRunning, s.Status())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.parked < s.live {
		if s.live == 0 {
			break // workers faulted or finished while pausing
		}
		s.cond.Wait()
	}
	return nil
}

// Resume releases paused workers through the resume barrier.
func (s *Scheduler) Resume() error {
	if !s.status.CompareAndSwap(int32(StatusPaused), int32(StatusRunning)) {
		return fmt.Errorf("%w: status %s", ErrNotRunning, s.Status())
	}
	s.mu.Lock()
	s.cond.Broadcast()
	s.mu.Unlock()
	return nil
}

// Close stops the run: it forces a pause if running, releases all workers
// so they observe the stopping status and exit, then joins every worker.
// Per-worker scratch memory is only reclaimed after the join, so no worker
// can touch freed state.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.status.Store(int32(StatusStopping))
	s.mu.Lock()
	s.cond.Broadcast()
	s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	if s.eg != nil {
		// Join every worker before returning; errors were already surfaced
		// through Wait.
		_ = s.eg.Wait()
	}
	return nil
}
