package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/seedforge/internal/charset"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Seed returns one random valid game seed of the given length.
func (r *RNG) Seed(length int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seedLocked(length)
}

// Seeds returns n random valid game seeds of the given length.
func (r *RNG) Seeds(n, length int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, n)
	for i := range out {
		out[i] = r.seedLocked(length)
	}
	return out
}

func (r *RNG) seedLocked(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = charset.Alphabet[r.rand.Intn(charset.AlphabetSize)]
	}
	return string(buf)
}
