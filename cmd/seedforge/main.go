// Command seedforge searches a seed space for seeds matching a JSON filter
// document.
//
// Runtime settings come from SEEDFORGE_* environment variables (a .env file
// is honored); the filter and space come from flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/seedforge"
	"github.com/hupe1980/seedforge/blobstore"
	minioblob "github.com/hupe1980/seedforge/blobstore/minio"
	"github.com/hupe1980/seedforge/checkpoint"
	"github.com/hupe1980/seedforge/config"
	"github.com/hupe1980/seedforge/progress"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "seedforge:", err)
		os.Exit(1)
	}
}

func run() error {
	filterPath := flag.String("filter", "", "path to the JSON filter document (required)")
	seedsPath := flag.String("seeds", "", "file with one candidate seed per line; searches only these")
	randomBatches := flag.Int64("random", 0, "sample N random batches instead of the sequential space")
	randomSeed := flag.Uint64("random-seed", 1, "PRNG seed for -random, for reproducible sampling")
	limit := flag.Int("limit", 0, "stop after this many matches (0 = unlimited)")
	resume := flag.String("resume", "", "run ID to resume from its checkpoint")
	quiet := flag.Bool("quiet", false, "suppress the progress line")
	flag.Parse()

	if *filterPath == "" {
		flag.Usage()
		return fmt.Errorf("missing -filter")
	}

	// A missing .env file is fine, the environment alone may be complete.
	_ = godotenv.Load()

	rt, err := config.LoadRuntime()
	if err != nil {
		return err
	}
	logger := seedforge.NewTextLogger(parseLevel(rt.LogLevel))

	docData, err := os.ReadFile(*filterPath)
	if err != nil {
		return fmt.Errorf("read filter document: %w", err)
	}
	doc, err := config.ParseDocument(docData)
	if err != nil {
		return err
	}

	space, err := buildSpace(rt, *seedsPath, *randomBatches, *randomSeed)
	if err != nil {
		return err
	}

	opts := []seedforge.Option{
		seedforge.WithWorkers(rt.Workers),
		seedforge.WithLogger(logger),
		seedforge.WithMatchLimit(*limit),
	}

	mgr, err := buildCheckpoints(rt)
	if err != nil {
		return err
	}
	if mgr != nil {
		opts = append(opts, seedforge.WithCheckpoints(mgr, rt.CheckpointEvery))
	}
	if *resume != "" {
		id, err := uuid.Parse(*resume)
		if err != nil {
			return fmt.Errorf("parse resume run ID: %w", err)
		}
		if mgr == nil {
			return fmt.Errorf("resume requires SEEDFORGE_CHECKPOINT_PATH or SEEDFORGE_MINIO_ENDPOINT")
		}
		opts = append(opts, seedforge.WithRunID(id), seedforge.WithResume())
	}

	if !*quiet {
		opts = append(opts, seedforge.WithProgress(printProgress, 4))
	}

	var sink *resultSink
	if rt.ResultsDB != "" {
		sink, err = openResultSink(rt.ResultsDB)
		if err != nil {
			return err
		}
		defer sink.Close()
		opts = append(opts, seedforge.WithMatchCallback(sink.Record))
	}

	search, err := seedforge.New(doc, space, opts...)
	if err != nil {
		return err
	}
	defer search.Close()

	if sink != nil {
		if err := sink.BeginRun(search.RunID()); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(os.Stderr, "run", search.RunID())
	results, err := search.Run(ctx)
	if !*quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Printf("%s\t%d/%d\n", r.Seed, r.Score, search.MaxScore())
	}
	return nil
}

func buildSpace(rt config.Runtime, seedsPath string, randomBatches int64, randomSeed uint64) (seedforge.Space, error) {
	switch {
	case seedsPath != "":
		data, err := os.ReadFile(seedsPath)
		if err != nil {
			return seedforge.Space{}, fmt.Errorf("read seeds file: %w", err)
		}
		var seeds []string
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				seeds = append(seeds, strings.ToUpper(line))
			}
		}
		return seedforge.ListSpace(seeds)
	case randomBatches > 0:
		return seedforge.RandomSpace(randomSeed, randomBatches, 4096)
	default:
		return seedforge.SequentialSpace(rt.SeedLen, rt.BatchChars)
	}
}

func buildCheckpoints(rt config.Runtime) (*checkpoint.Manager, error) {
	var store blobstore.Store
	switch {
	case rt.MinioEndpoint != "":
		client, err := minio.New(rt.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(rt.MinioAccessKey, rt.MinioSecretKey, ""),
			Secure: rt.MinioSecure,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		store = minioblob.NewStore(client, rt.MinioBucket, "seedforge")
	case rt.CheckpointPath != "":
		local, err := blobstore.NewLocalStore(rt.CheckpointPath)
		if err != nil {
			return nil, err
		}
		store = local
	default:
		return nil, nil
	}
	return checkpoint.NewManager(store, checkpoint.WithCompression(checkpoint.Compression(rt.Compression))), nil
}

func printProgress(snap progress.Snapshot) {
	fmt.Fprintf(os.Stderr, "\r%6.2f%%  %12.0f seeds/s  eta %s ",
		snap.Fraction*100, snap.SeedsPerSecond, snap.ETAText)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
