package main

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/seedforge"

	_ "modernc.org/sqlite"
)

const sinkSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	started_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS matches (
	run_id   TEXT NOT NULL REFERENCES runs(id),
	seed     TEXT NOT NULL,
	score    INTEGER NOT NULL,
	found_at TEXT NOT NULL,
	PRIMARY KEY (run_id, seed)
);
`

// resultSink persists matches into a SQLite file as they are found, so an
// interrupted run keeps its matches.
type resultSink struct {
	mu    sync.Mutex
	db    *sql.DB
	runID string
}

func openResultSink(path string) (*resultSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open results db: %w", err)
	}
	if _, err := db.Exec(sinkSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init results db: %w", err)
	}
	return &resultSink{db: db}, nil
}

func (s *resultSink) BeginRun(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runID = id.String()
	_, err := s.db.Exec(`INSERT OR IGNORE INTO runs (id, started_at) VALUES (?, ?)`,
		s.runID, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Record is the match callback; it runs on worker goroutines.
func (s *resultSink) Record(r seedforge.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// INSERT OR IGNORE: on resume a match may be re-verified when its batch
	// is replayed.
	_, _ = s.db.Exec(`INSERT OR IGNORE INTO matches (run_id, seed, score, found_at) VALUES (?, ?, ?, ?)`,
		s.runID, r.Seed, r.Score, time.Now().UTC().Format(time.RFC3339))
}

func (s *resultSink) Close() error {
	return s.db.Close()
}
