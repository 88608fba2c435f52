package lane

// Stream is the vectorized counterpart of rng.Stream: one cursor advancing
// Width lanes in lockstep. It has exactly one owner (see internal/game).
type Stream struct {
	state  Vec
	hashed *Vec // points at the owning Source's hashed-seed vector
}

// Next advances all lanes one position and returns the emitted values.
func (s *Stream) Next() Vec {
	Advance(&s.state)
	var out Vec
	Emit(&s.state, s.hashed, &out)
	return out
}

// NextIndex advances all lanes and maps each emitted value to [0, n).
func (s *Stream) NextIndex(n int) [Width]int {
	v := s.Next()
	var out [Width]int
	Index(&v, n, &out)
	return out
}

// Source derives vector streams for one batch of up to Width seeds. All
// seeds in a batch must have equal length. Lanes beyond the populated count
// carry copies of lane 0; callers mask them out with Valid.
type Source struct {
	chars    [][Width]float64 // seed character matrix, one Vec per position
	seedLen  int
	valid    Mask
	hashed   Vec
	partials map[int]Vec
	streams  map[string]*Stream
}

// NewSource builds a vector Source from up to Width equal-length seeds.
func NewSource(seeds []string) *Source {
	n := len(seeds)
	if n == 0 || n > Width {
		panic("lane: batch must hold 1..Width seeds")
	}
	seedLen := len(seeds[0])
	for _, s := range seeds[1:] {
		if len(s) != seedLen {
			panic("lane: batch seeds must have equal length")
		}
	}

	src := &Source{
		chars:    make([][Width]float64, seedLen),
		seedLen:  seedLen,
		valid:    Mask(1<<n) - 1,
		partials: make(map[int]Vec, 8),
		streams:  make(map[string]*Stream, 16),
	}
	for pos := 0; pos < seedLen; pos++ {
		for l := 0; l < Width; l++ {
			s := seeds[0]
			if l < n {
				s = seeds[l]
			}
			src.chars[pos][l] = float64(s[pos])
		}
	}
	src.hashed = src.fold(Splat(1), 0)
	return src
}

// Valid returns the mask of populated lanes.
func (s *Source) Valid() Mask { return s.valid }

// SeedLen returns the length of the batch's seeds.
func (s *Source) SeedLen() int { return s.seedLen }

// Hashed returns the per-lane hashed seed values.
func (s *Source) Hashed() Vec { return s.hashed }

// fold runs the hash recurrence over the seed characters as they would sit
// at the tail of a key of length keyLen, last character first.
func (s *Source) fold(num Vec, keyLen int) Vec {
	for i := s.seedLen - 1; i >= 0; i-- {
		HashStep(&num, s.chars[i], keyLen+i+1)
	}
	return num
}

// Partial returns the cached Stage-1 partial vector for keys of length keyLen.
func (s *Source) Partial(keyLen int) Vec {
	if p, ok := s.partials[keyLen]; ok {
		return p
	}
	p := s.fold(Splat(1), keyLen)
	s.partials[keyLen] = p
	return p
}

// Stream returns the vector cursor for key, creating it on first use.
func (s *Source) Stream(key string) *Stream {
	if st, ok := s.streams[key]; ok {
		return st
	}
	num := s.Partial(len(key))
	for i := len(key) - 1; i >= 0; i-- {
		HashStepUniform(&num, key[i], i+1)
	}
	st := &Stream{state: num, hashed: &s.hashed}
	s.streams[key] = st
	return st
}
