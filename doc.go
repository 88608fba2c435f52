// Package seedforge searches a card game's seed space for seeds whose
// generated content matches a filter.
//
// A seed fully determines the game's pseudo-random content. Seedforge
// replays the generator bit for bit per candidate seed and evaluates a
// filter of must/should/must-not clauses against the replayed content,
// scanning candidates in 8-lane vector batches with a conservative
// prefilter and a scalar verification pass.
//
// # Quick Start
//
//	doc, _ := config.ParseDocument(filterJSON)
//	space, _ := seedforge.SequentialSpace(8, 3)
//
//	search, _ := seedforge.New(doc, space,
//	    seedforge.WithWorkers(runtime.GOMAXPROCS(0)),
//	    seedforge.WithMatchLimit(100),
//	)
//
//	results, _ := search.Run(ctx)
//	for _, r := range results {
//	    fmt.Println(r.Seed, r.Score)
//	}
//
// # Pause, Resume, Checkpoints
//
// A running search can be paused cooperatively and resumed; with a
// checkpoint manager attached, an interrupted run resumes from its last
// checkpoint and re-executes at most the batches since the last write:
//
//	mgr := checkpoint.NewManager(store)
//	search, _ := seedforge.New(doc, space, seedforge.WithCheckpoints(mgr, 1024))
//
// # Evaluation Model
//
// Candidates move through three stages: the vector prefilter drops lanes
// that provably cannot match, scalar verification replays the full
// generator per surviving candidate and issues the authoritative verdict,
// and matches are scored by their satisfied should clauses. The prefilter
// never drops a true match; it only skips work.
package seedforge
