package filter

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/seedforge/internal/content"
	"github.com/hupe1980/seedforge/internal/game"
	"github.com/hupe1980/seedforge/internal/hash"
	"github.com/hupe1980/seedforge/internal/state"
)

// Options configures filter compilation.
type Options struct {
	// MinAnte and MaxAnte bound the search range. Defaults: 1 and 8.
	MinAnte int
	MaxAnte int

	// EmptyAnteMeansAll flips the interpretation of an empty clause ante
	// mask from "applies to no ante" (the default) to "applies to every
	// ante in the search range". The source behavior is inconsistent here,
	// so the policy is explicit instead of guessed.
	EmptyAnteMeansAll bool

	// Game overrides the generator configuration replayed against.
	Game game.Config
}

func (o *Options) applyDefaults() {
	if o.MinAnte <= 0 {
		o.MinAnte = 1
	}
	if o.MaxAnte <= 0 {
		o.MaxAnte = 8
	}
	o.Game.ApplyDefaults()
}

// group is the unit of evaluation: the clauses of one category and one
// polarity, batched for a single pass.
type group struct {
	kind     Kind
	cat      content.Category
	inverted bool
	clauses  []Clause
	minAnte  int
	maxAnte  int
	vector   bool // eligible for the vector prefilter phase
}

// Filter is a compiled, immutable clause set. Safe for concurrent use by
// many workers once constructed.
type Filter struct {
	opts        Options
	groups      []*group
	vectorPlan  map[content.Category][]*group
	catAntes    [content.NumCategories]uint64 // union of ante masks per category
	bossMaxAnte int
	maxAnte     int
	maxScore    int
	fingerprint uint32
}

// New validates and compiles the three clause lists. All configuration
// errors surface here, before any batch executes.
func New(must, should, mustNot []Clause, opts Options) (*Filter, error) {
	opts.applyDefaults()
	if opts.MinAnte > opts.MaxAnte {
		return nil, fmt.Errorf("%w: min ante %d > max ante %d", ErrInvalidClause, opts.MinAnte, opts.MaxAnte)
	}
	if opts.MaxAnte > state.MaxAntes {
		return nil, fmt.Errorf("%w: max ante %d exceeds limit %d", ErrAnteOutOfRange, opts.MaxAnte, state.MaxAntes)
	}

	f := &Filter{opts: opts, vectorPlan: make(map[content.Category][]*group)}

	// Group clauses by (kind, category) in a fixed order so compilation and
	// the fingerprint are deterministic for a given input.
	var byKindCat [3][content.NumCategories][]Clause
	for kind, list := range [...][]Clause{Must: must, Should: should, MustNot: mustNot} {
		for i := range list {
			c := list[i] // normalized copy
			if err := f.validateClause(&c, Kind(kind)); err != nil {
				return nil, err
			}
			byKindCat[kind][c.Category] = append(byKindCat[kind][c.Category], c)
		}
	}

	for kind := range byKindCat {
		for cat := range byKindCat[kind] {
			clauses := byKindCat[kind][cat]
			if len(clauses) == 0 {
				continue
			}
			g, err := f.buildGroup(Kind(kind), content.Category(cat), clauses)
			if err != nil {
				return nil, err
			}
			f.groups = append(f.groups, g)
		}
	}

	f.finishCompile()
	return f, nil
}

func (f *Filter) validateClause(c *Clause, kind Kind) error {
	if c.Category >= content.NumCategories {
		return fmt.Errorf("%w: %d", ErrUnknownCategory, c.Category)
	}
	if c.Invert && kind != Must {
		return fmt.Errorf("%w: invert is only supported on must clauses", ErrInvalidClause)
	}

	// Wanted-value specification.
	switch {
	case len(c.Values) > 0:
		n := content.Count(c.Category)
		for _, v := range c.Values {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: value %d out of range for %s", ErrInvalidClause, v, c.Category)
			}
		}
	case c.Rarity != content.RarityAny:
		if c.Category != content.CategoryJoker && c.Category != content.CategorySoulJoker {
			return fmt.Errorf("%w: rarity wildcard on %s", ErrInvalidClause, c.Category)
		}
		if c.Category == content.CategorySoulJoker && c.Rarity != content.RarityLegendary {
			return fmt.Errorf("%w: soul jokers are always legendary", ErrInvalidClause)
		}
	default:
		return fmt.Errorf("%w: no wanted values and no rarity wildcard", ErrInvalidClause)
	}

	if c.Edition != content.EditionAny && c.Category != content.CategoryJoker {
		return fmt.Errorf("%w: edition constraint on %s", ErrInvalidClause, c.Category)
	}

	// Ante mask.
	if c.Antes == 0 && f.opts.EmptyAnteMeansAll {
		for a := f.opts.MinAnte; a <= f.opts.MaxAnte; a++ {
			c.Antes |= AnteBit(a)
		}
	}
	if hi := c.maxAnte(); hi > f.opts.MaxAnte {
		return fmt.Errorf("%w: clause ante %d beyond max ante %d", ErrAnteOutOfRange, hi, f.opts.MaxAnte)
	}
	if lo := c.minAnte(); lo > 0 && lo < f.opts.MinAnte {
		return fmt.Errorf("%w: clause ante %d below min ante %d", ErrAnteOutOfRange, lo, f.opts.MinAnte)
	}

	// Slot mask, validated against the category's position space.
	if c.Slots != 0 {
		var limit int
		switch c.Category {
		case content.CategoryVoucher, content.CategoryBoss:
			return fmt.Errorf("%w: %s has no positional slots", ErrSlotOutOfRange, c.Category)
		case content.CategoryTag:
			limit = 2 // small blind, big blind
		case content.CategoryJoker, content.CategoryTarot, content.CategoryPlanet:
			limit = max(f.opts.Game.ShopSlots, f.opts.Game.PacksPerAnte*f.opts.Game.PackSize)
		default:
			limit = f.opts.Game.PacksPerAnte * f.opts.Game.PackSize
		}
		if c.Slots>>limit != 0 {
			return fmt.Errorf("%w: slot mask %#x exceeds %d positions for %s", ErrSlotOutOfRange, c.Slots, limit, c.Category)
		}
	}

	if c.Weight <= 0 {
		c.Weight = 1
	}
	return nil
}

func (f *Filter) buildGroup(kind Kind, cat content.Category, clauses []Clause) (*group, error) {
	inverted := clauses[0].Invert
	for _, c := range clauses[1:] {
		if c.Invert != inverted {
			return nil, fmt.Errorf("%w: %s/%s", ErrMixedInvertGroup, kind, cat)
		}
	}
	g := &group{kind: kind, cat: cat, inverted: inverted, clauses: clauses}
	for i := range clauses {
		c := &clauses[i]
		if lo := c.minAnte(); lo > 0 && (g.minAnte == 0 || lo < g.minAnte) {
			g.minAnte = lo
		}
		if hi := c.maxAnte(); hi > g.maxAnte {
			g.maxAnte = hi
		}
	}
	return g, nil
}

func (f *Filter) finishCompile() {
	// An activation-capable voucher clause (a plain must clause) can change
	// later voucher draws through the resample path. The vector phase only
	// handles voucher groups whose plain-draw evaluation is provably
	// conservative; everything else defers to scalar verification.
	var plainMustVouchers int
	for _, g := range f.groups {
		if g.kind == Must && g.cat == content.CategoryVoucher && !g.inverted {
			plainMustVouchers += len(g.clauses)
		}
	}

	for _, g := range f.groups {
		for i := range g.clauses {
			f.catAntes[g.cat] |= g.clauses[i].Antes
		}
		if g.cat == content.CategoryBoss && g.maxAnte > f.bossMaxAnte {
			f.bossMaxAnte = g.maxAnte
		}
		if g.maxAnte > f.maxAnte {
			f.maxAnte = g.maxAnte
		}
		if g.kind == Should {
			for i := range g.clauses {
				f.maxScore += g.clauses[i].Weight
			}
		}

		g.vector = g.cat.Vectorizable() && g.kind != Should
		if g.cat == content.CategoryVoucher {
			switch {
			case g.kind == Must && !g.inverted:
				g.vector = g.vector && len(g.clauses) == 1
			default:
				g.vector = g.vector && plainMustVouchers == 0
			}
		}
		if g.vector {
			f.vectorPlan[g.cat] = append(f.vectorPlan[g.cat], g)
		}
	}

	f.fingerprint = f.computeFingerprint()
}

// computeFingerprint folds every semantically relevant field into a CRC so a
// resumed run can detect that its checkpoint belongs to a different filter.
func (f *Filter) computeFingerprint() uint32 {
	h := hash.NewCRC32C()
	buf := make([]byte, 8)
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf, v)
		h.Write(buf)
	}
	put(uint64(f.opts.MinAnte))
	put(uint64(f.opts.MaxAnte))
	if f.opts.EmptyAnteMeansAll {
		put(1)
	} else {
		put(0)
	}
	put(uint64(f.opts.Game.ShopSlots))
	put(uint64(f.opts.Game.PacksPerAnte))
	put(uint64(f.opts.Game.PackSize))
	put(uint64(f.opts.Game.RerollCap))
	for _, g := range f.groups {
		put(uint64(g.kind)<<32 | uint64(g.cat))
		for i := range g.clauses {
			c := &g.clauses[i]
			put(uint64(c.Category))
			for _, v := range c.Values {
				put(uint64(v))
			}
			put(uint64(c.Rarity)<<32 | uint64(c.Edition))
			put(c.Antes)
			put(c.Slots)
			if c.Invert {
				put(1)
			} else {
				put(0)
			}
			put(uint64(c.Weight))
		}
	}
	return h.Sum32()
}

// Fingerprint identifies the compiled clause set and options.
func (f *Filter) Fingerprint() uint32 { return f.fingerprint }

// MaxScore is the highest possible should-clause score.
func (f *Filter) MaxScore() int { return f.maxScore }

// GameConfig returns the generator configuration the filter replays against.
func (f *Filter) GameConfig() game.Config { return f.opts.Game }

// MaxAnte returns the highest ante any clause visits.
func (f *Filter) MaxAnte() int { return f.maxAnte }
