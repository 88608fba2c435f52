package sched

import (
	"fmt"
	"math/rand/v2"

	"github.com/hupe1980/seedforge/internal/charset"
	"github.com/hupe1980/seedforge/internal/lane"
)

// Provider turns a batch index into candidate seeds. Seeds are yielded in
// groups of up to lane.Width equal-length strings; a one-seed group tells
// the executor to bypass vectorization.
//
// Implementations must be safe for concurrent Walk calls with distinct
// batch indices: workers expand batches in parallel.
type Provider interface {
	// TotalBatches returns the number of batches in the run.
	TotalBatches() int64

	// Walk yields the candidate groups of one batch, in order.
	Walk(batch int64, yield func(seeds []string) error) error
}

// Sequential enumerates the full cartesian product of seedLen alphabet
// characters. A batch fixes the first seedLen-batchChars characters (the
// base-35 encoding of the batch index) and expands the remaining positions
// recursively, one character position at a time, down to the lane-parallel
// base case where the final position varies across lanes.
type Sequential struct {
	seedLen    int
	batchChars int
	prefixLen  int
}

// NewSequential creates a sequential provider. batchChars is the number of
// trailing positions expanded inside one batch; each batch covers
// 35^batchChars candidates.
func NewSequential(seedLen, batchChars int) (*Sequential, error) {
	if seedLen <= 0 || seedLen > charset.MaxSeedLen {
		return nil, fmt.Errorf("sched: seed length %d out of range", seedLen)
	}
	if batchChars <= 0 || batchChars > seedLen {
		return nil, fmt.Errorf("sched: batch characters %d out of range for seed length %d", batchChars, seedLen)
	}
	return &Sequential{
		seedLen:    seedLen,
		batchChars: batchChars,
		prefixLen:  seedLen - batchChars,
	}, nil
}

// TotalBatches returns 35^(seedLen-batchChars).
func (p *Sequential) TotalBatches() int64 {
	return charset.Pow(p.prefixLen)
}

// BatchSize returns the number of candidates in one batch, 35^batchChars.
func (p *Sequential) BatchSize() int64 {
	return charset.Pow(p.batchChars)
}

// Walk expands one batch. The scratch buffer is local to the call, so
// concurrent walks never share memory.
func (p *Sequential) Walk(batch int64, yield func(seeds []string) error) error {
	prefix, err := charset.EncodePrefix(batch, p.prefixLen)
	if err != nil {
		return err
	}
	buf := make([]byte, p.seedLen)
	copy(buf, prefix)
	return p.expand(buf, p.prefixLen, yield)
}

func (p *Sequential) expand(buf []byte, pos int, yield func(seeds []string) error) error {
	if pos == p.seedLen-1 {
		// Base case: the final position varies across lanes.
		group := make([]string, 0, lane.Width)
		for i := 0; i < charset.AlphabetSize; i++ {
			buf[pos] = charset.Alphabet[i]
			group = append(group, string(buf))
			if len(group) == lane.Width {
				if err := yield(group); err != nil {
					return err
				}
				group = make([]string, 0, lane.Width)
			}
		}
		if len(group) > 0 {
			return yield(group)
		}
		return nil
	}
	for i := 0; i < charset.AlphabetSize; i++ {
		buf[pos] = charset.Alphabet[i]
		if err := p.expand(buf, pos+1, yield); err != nil {
			return err
		}
	}
	return nil
}

// List serves candidates from a caller-supplied ordered list. Contiguous
// equal-length entries are grouped into vector batches; length breaks and
// the final remainder fall back to one-seed groups, which bypass
// vectorization as a pure efficiency measure.
type List struct {
	seeds     []string
	batchSize int
}

// NewList creates a list provider over seeds. Every entry must be a valid
// seed. batchSize is the number of candidates per batch; <= 0 selects a
// default of 4096.
func NewList(seeds []string, batchSize int) (*List, error) {
	for _, s := range seeds {
		if !charset.Valid(s) {
			return nil, fmt.Errorf("sched: invalid seed %q", s)
		}
	}
	if batchSize <= 0 {
		batchSize = 4096
	}
	return &List{seeds: seeds, batchSize: batchSize}, nil
}

// BatchSize returns the configured candidates per batch.
func (p *List) BatchSize() int64 { return int64(p.batchSize) }

// TotalBatches returns ceil(len(seeds)/batchSize).
func (p *List) TotalBatches() int64 {
	if len(p.seeds) == 0 {
		return 0
	}
	return int64((len(p.seeds) + p.batchSize - 1) / p.batchSize)
}

// Walk yields the groups of one batch: runs of contiguous equal-length
// seeds, chunked to lane.Width.
func (p *List) Walk(batch int64, yield func(seeds []string) error) error {
	lo := int(batch) * p.batchSize
	if lo >= len(p.seeds) {
		return fmt.Errorf("sched: batch %d out of range", batch)
	}
	hi := lo + p.batchSize
	if hi > len(p.seeds) {
		hi = len(p.seeds)
	}

	run := p.seeds[lo:hi]
	for len(run) > 0 {
		n := 1
		for n < len(run) && n < lane.Width && len(run[n]) == len(run[0]) {
			n++
		}
		if n < lane.Width {
			// Undersized or length-heterogeneous: per-seed scalar groups.
			for i := 0; i < n; i++ {
				if err := yield(run[i : i+1]); err != nil {
					return err
				}
			}
		} else {
			if err := yield(run[:n]); err != nil {
				return err
			}
		}
		run = run[n:]
	}
	return nil
}

// Random generates uniformly random full-length candidates. Generation is
// deterministic per (runSeed, batch), so re-running a configuration visits
// the same candidates.
type Random struct {
	runSeed   uint64
	batches   int64
	batchSize int
}

// NewRandom creates a random provider producing batches*batchSize
// candidates.
func NewRandom(runSeed uint64, batches int64, batchSize int) (*Random, error) {
	if batches <= 0 || batchSize <= 0 {
		return nil, fmt.Errorf("sched: random provider needs positive batches and batch size")
	}
	return &Random{runSeed: runSeed, batches: batches, batchSize: batchSize}, nil
}

// TotalBatches returns the configured batch count.
func (p *Random) TotalBatches() int64 { return p.batches }

// BatchSize returns the configured candidates per batch.
func (p *Random) BatchSize() int64 { return int64(p.batchSize) }

// Walk yields batchSize random seeds in lane.Width groups.
func (p *Random) Walk(batch int64, yield func(seeds []string) error) error {
	rng := rand.New(rand.NewPCG(p.runSeed, uint64(batch)))
	buf := make([]byte, charset.MaxSeedLen)
	group := make([]string, 0, lane.Width)
	for i := 0; i < p.batchSize; i++ {
		for j := range buf {
			buf[j] = charset.Alphabet[rng.IntN(charset.AlphabetSize)]
		}
		group = append(group, string(buf))
		if len(group) == lane.Width {
			if err := yield(group); err != nil {
				return err
			}
			group = make([]string, 0, lane.Width)
		}
	}
	if len(group) > 0 {
		return yield(group)
	}
	return nil
}
