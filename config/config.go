package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Runtime is the process-level configuration, read from SEEDFORGE_*
// environment variables. Zero values select defaults.
type Runtime struct {
	// Workers is the fixed worker count. 0 selects GOMAXPROCS.
	Workers int `env:"WORKERS"`

	// SeedLen is the candidate length for sequential and random providers.
	SeedLen int `env:"SEED_LEN" envDefault:"8"`

	// BatchChars is the number of trailing seed positions expanded inside
	// one sequential batch.
	BatchChars int `env:"BATCH_CHARS" envDefault:"3"`

	// CheckpointPath is the local directory for checkpoints. Empty
	// disables checkpointing unless a MinIO endpoint is set.
	CheckpointPath string `env:"CHECKPOINT_PATH"`

	// CheckpointEvery is the number of completed batches between
	// checkpoint writes.
	CheckpointEvery int64 `env:"CHECKPOINT_EVERY" envDefault:"1024"`

	// Compression selects the checkpoint compression: none, zstd, lz4.
	Compression string `env:"COMPRESSION" envDefault:"zstd"`

	// MinioEndpoint, when set, stores checkpoints in S3-compatible object
	// storage instead of the local filesystem.
	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioBucket    string `env:"MINIO_BUCKET"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioSecure    bool   `env:"MINIO_SECURE"`

	// ResultsDB is a SQLite file for match persistence. Empty keeps
	// matches in memory only.
	ResultsDB string `env:"RESULTS_DB"`

	// LogLevel is the slog level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadRuntime reads Runtime from the environment.
func LoadRuntime() (Runtime, error) {
	var rt Runtime
	if err := env.ParseWithOptions(&rt, env.Options{Prefix: "SEEDFORGE_"}); err != nil {
		return Runtime{}, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := rt.Validate(); err != nil {
		return Runtime{}, err
	}
	return rt, nil
}

// Validate checks cross-field consistency.
func (rt *Runtime) Validate() error {
	if rt.SeedLen < 1 || rt.SeedLen > 8 {
		return fmt.Errorf("config: seed length %d out of range [1,8]", rt.SeedLen)
	}
	if rt.BatchChars < 1 || rt.BatchChars > rt.SeedLen {
		return fmt.Errorf("config: batch chars %d out of range [1,%d]", rt.BatchChars, rt.SeedLen)
	}
	switch rt.Compression {
	case "none", "zstd", "lz4":
	default:
		return fmt.Errorf("config: unknown compression %q", rt.Compression)
	}
	if rt.MinioEndpoint != "" && rt.MinioBucket == "" {
		return fmt.Errorf("config: minio endpoint set without bucket")
	}
	return nil
}
