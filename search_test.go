package seedforge

import (
	"context"
	"sync"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seedforge/blobstore"
	"github.com/hupe1980/seedforge/checkpoint"
	"github.com/hupe1980/seedforge/config"
	"github.com/hupe1980/seedforge/internal/content"
	"github.com/hupe1980/seedforge/internal/game"
	"github.com/hupe1980/seedforge/progress"
	"github.com/hupe1980/seedforge/testutil"
)

// matchAllDoc compiles to a filter with no must clauses, so every seed
// matches and the single should clause only influences the score.
func matchAllDoc() *config.Document {
	return &config.Document{
		Should: []config.ClauseDoc{
			{Category: "voucher", Items: []string{"Overstock"}, Antes: []int{1}, Weight: 1},
		},
	}
}

// targetDoc compiles to a filter that the given seed satisfies: the wanted
// voucher is whatever the seed actually draws at ante 1.
func targetDoc(seed string) *config.Document {
	idx := game.NewScalar(seed, game.DefaultConfig()).Voucher(1, nil)
	return &config.Document{
		Must: []config.ClauseDoc{
			{Category: "voucher", Items: []string{content.Name(content.CategoryVoucher, idx)}, Antes: []int{1}},
		},
	}
}

func TestNewValidation(t *testing.T) {
	space, err := ListSpace([]string{"ALEEB"})
	require.NoError(t, err)

	_, err = New(nil, space)
	assert.Error(t, err)

	_, err = New(matchAllDoc(), Space{})
	assert.Error(t, err)

	_, err = New(matchAllDoc(), space, WithResume())
	assert.Error(t, err)

	_, err = ListSpace([]string{"not a seed"})
	assert.Error(t, err)
}

func TestSearchFindsTarget(t *testing.T) {
	const target = "ALEEB"
	seeds := []string{
		"AAAAA", "BBBBB", "CCCCC", "DDDDD", target,
		"EEEEE", "FFFFF", "GGGGG", "HHHHH", "IIIII",
		"JJJJJ", "KKKKK", "LLLLL", "MMMMM", "NNNNN",
	}
	space, err := ListSpace(seeds)
	require.NoError(t, err)

	s, err := New(targetDoc(target), space, WithWorkers(2), WithLogger(NoopLogger()))
	require.NoError(t, err)
	defer s.Close()

	results, err := s.Run(context.Background())
	require.NoError(t, err)

	var found bool
	for _, r := range results {
		assert.True(t, s.filter.Verify(r.Seed).Match, "reported seed %s does not verify", r.Seed)
		if r.Seed == target {
			found = true
		}
	}
	assert.True(t, found, "target seed missing from results")
}

func TestSearchSequentialSpace(t *testing.T) {
	// The full two-character space against a match-all filter returns every
	// candidate.
	space, err := SequentialSpace(2, 1)
	require.NoError(t, err)

	s, err := New(matchAllDoc(), space, WithWorkers(4), WithLogger(NoopLogger()))
	require.NoError(t, err)
	defer s.Close()

	results, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, 35*35)
	assert.Equal(t, 1, s.MaxScore())
}

func TestSearchMatchLimit(t *testing.T) {
	space, err := SequentialSpace(3, 1)
	require.NoError(t, err)

	var mu sync.Mutex
	var cbSeeds []string
	s, err := New(matchAllDoc(), space,
		WithWorkers(2),
		WithLogger(NoopLogger()),
		WithMatchLimit(5),
		WithMatchCallback(func(r Result) {
			mu.Lock()
			cbSeeds = append(cbSeeds, r.Seed)
			mu.Unlock()
		}),
	)
	require.NoError(t, err)
	defer s.Close()

	results, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, 5)

	mu.Lock()
	assert.Len(t, cbSeeds, 5)
	mu.Unlock()
}

func TestSearchProgress(t *testing.T) {
	space, err := SequentialSpace(2, 1)
	require.NoError(t, err)

	var mu sync.Mutex
	var snaps []progress.Snapshot
	s, err := New(matchAllDoc(), space,
		WithWorkers(2),
		WithLogger(NoopLogger()),
		WithProgress(func(sn progress.Snapshot) {
			mu.Lock()
			snaps = append(snaps, sn)
			mu.Unlock()
		}, 1000),
	)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Run(context.Background())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, snaps)
	assert.Greater(t, snaps[0].Fraction, 0.0)
}

func TestSearchLifecycle(t *testing.T) {
	space, err := ListSpace([]string{"ALEEB"})
	require.NoError(t, err)

	s, err := New(matchAllDoc(), space, WithLogger(NoopLogger()))
	require.NoError(t, err)

	_, err = s.Wait()
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.ErrorIs(t, s.Pause(), ErrNotStarted)
	assert.ErrorIs(t, s.Resume(), ErrNotStarted)

	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)

	_, err = s.Wait()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Closed searches refuse to start.
	s2, err := New(matchAllDoc(), space, WithLogger(NoopLogger()))
	require.NoError(t, err)
	require.NoError(t, s2.Close())
	assert.ErrorIs(t, s2.Start(context.Background()), ErrClosed)
}

func TestSearchCheckpointDeletedOnCompletion(t *testing.T) {
	store := blobstore.NewMemoryStore()
	mgr := checkpoint.NewManager(store)
	runID := uuid.New()

	space, err := SequentialSpace(2, 1)
	require.NoError(t, err)

	s, err := New(matchAllDoc(), space,
		WithWorkers(2),
		WithLogger(NoopLogger()),
		WithRunID(runID),
		WithCheckpoints(mgr, 1),
	)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Run(context.Background())
	require.NoError(t, err)

	_, err = mgr.Load(context.Background(), runID)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestSearchResumeSkipsExecuted(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	mgr := checkpoint.NewManager(store)
	runID := uuid.New()

	doc := matchAllDoc()
	f, err := doc.Compile()
	require.NoError(t, err)

	space, err := SequentialSpace(2, 1)
	require.NoError(t, err)
	total := space.provider.TotalBatches()

	// A checkpoint that records every batch as executed: the resumed run has
	// nothing left to do.
	executed := roaring.New()
	for i := int64(0); i < total; i++ {
		executed.Add(uint32(i))
	}
	cp := &checkpoint.Checkpoint{
		RunID:        runID,
		Fingerprint:  f.Fingerprint(),
		TotalBatches: total,
		NextBatch:    total,
		Completed:    total,
	}
	require.NoError(t, cp.SetExecuted(executed))
	require.NoError(t, mgr.Save(ctx, cp))

	s, err := New(doc, space,
		WithWorkers(2),
		WithLogger(NoopLogger()),
		WithRunID(runID),
		WithCheckpoints(mgr, 1),
		WithResume(),
	)
	require.NoError(t, err)
	defer s.Close()

	results, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchResumeRejectsForeignCheckpoint(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	mgr := checkpoint.NewManager(store)
	runID := uuid.New()

	space, err := SequentialSpace(2, 1)
	require.NoError(t, err)

	cp := &checkpoint.Checkpoint{
		RunID:        runID,
		Fingerprint:  0x12345678, // some other filter
		TotalBatches: space.provider.TotalBatches(),
	}
	require.NoError(t, mgr.Save(ctx, cp))

	s, err := New(matchAllDoc(), space,
		WithLogger(NoopLogger()),
		WithRunID(runID),
		WithCheckpoints(mgr, 1),
		WithResume(),
	)
	require.NoError(t, err)
	defer s.Close()

	err = s.Start(ctx)
	assert.ErrorIs(t, err, checkpoint.ErrFilterMismatch)
}

func TestSearchResumeFreshRun(t *testing.T) {
	// Resume with no stored checkpoint is a normal first run.
	store := blobstore.NewMemoryStore()
	mgr := checkpoint.NewManager(store)

	space, err := ListSpace([]string{"ALEEB", "AAAAA"}) // small list
	require.NoError(t, err)

	s, err := New(matchAllDoc(), space,
		WithLogger(NoopLogger()),
		WithCheckpoints(mgr, 1),
		WithResume(),
	)
	require.NoError(t, err)
	defer s.Close()

	results, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchGeneratedList(t *testing.T) {
	// A generated candidate list with the target planted mid-list.
	const target = "7LB2WVPK"
	seeds := testutil.NewRNG(1).Seeds(60, 8)
	seeds[30] = target

	space, err := ListSpace(seeds)
	require.NoError(t, err)

	s, err := New(targetDoc(target), space, WithWorkers(3), WithLogger(NoopLogger()))
	require.NoError(t, err)
	defer s.Close()

	results, err := s.Run(context.Background())
	require.NoError(t, err)

	var found bool
	for _, r := range results {
		if r.Seed == target {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBasicMetricsCollector(t *testing.T) {
	space, err := SequentialSpace(2, 1)
	require.NoError(t, err)

	metrics := &BasicMetricsCollector{}
	s, err := New(matchAllDoc(), space,
		WithWorkers(2),
		WithLogger(NoopLogger()),
		WithMetricsCollector(metrics),
	)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Run(context.Background())
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(35*35), stats.VerifyCount)
	assert.Equal(t, int64(35*35), stats.VerifyMatches)
	assert.Greater(t, stats.BatchCount, int64(0))
}
