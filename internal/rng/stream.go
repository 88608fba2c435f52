package rng

// Stream is a stateful cursor over the pseudo-random values derived from one
// (seed, key) pair. Each Next call consumes exactly one position.
//
// Stream is NOT safe for concurrent use and must have exactly one owner.
type Stream struct {
	state      float64
	hashedSeed float64
}

// Next advances the cursor and returns the value at the new position, a
// float64 in [0, 1).
func (s *Stream) Next() float64 {
	s.state = Round13(Fract(s.state*advMul + advInc))
	return Round13((s.state + s.hashedSeed) / 2)
}

// NextInt maps the next value to an integer in [min, max].
func (s *Stream) NextInt(min, max int) int {
	n := min + int(s.Next()*float64(max-min+1))
	if n > max {
		n = max
	}
	return n
}

// NextIndex maps the next value to an index in [0, n).
func (s *Stream) NextIndex(n int) int {
	return s.NextInt(0, n-1)
}

// Source derives streams for a single seed. It owns the seed's hashed value
// and the per-key-length Stage-1 partial cache, and guarantees at most one
// Stream per key.
//
// Source is NOT safe for concurrent use. Each worker constructs its own.
type Source struct {
	seed       string
	hashedSeed float64
	partials   map[int]float64
	streams    map[string]*Stream
}

// NewSource creates a Source for seed.
func NewSource(seed string) *Source {
	return &Source{
		seed:       seed,
		hashedSeed: Hash(seed),
		partials:   make(map[int]float64, 8),
		streams:    make(map[string]*Stream, 16),
	}
}

// Seed returns the literal seed characters.
func (s *Source) Seed() string { return s.seed }

// HashedSeed returns Hash(seed), the constant mixed into every emitted value.
func (s *Source) HashedSeed() float64 { return s.hashedSeed }

// Partial returns the cached Stage-1 partial for keys of length keyLen.
func (s *Source) Partial(keyLen int) float64 {
	if p, ok := s.partials[keyLen]; ok {
		return p
	}
	p := PartialHash(s.seed, keyLen)
	s.partials[keyLen] = p
	return p
}

// Stream returns the cursor for key, creating it on first use. The returned
// cursor is the only cursor that will ever exist for (seed, key) within this
// Source's lifetime.
func (s *Source) Stream(key string) *Stream {
	if st, ok := s.streams[key]; ok {
		return st
	}
	st := &Stream{
		state:      HashFromPartial(key, s.Partial(len(key))),
		hashedSeed: s.hashedSeed,
	}
	s.streams[key] = st
	return st
}
