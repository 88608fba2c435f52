package game

import (
	"github.com/hupe1980/seedforge/internal/content"
	"github.com/hupe1980/seedforge/internal/lane"
)

// Context is the uniform draw surface of the vector prefilter phase. It is
// satisfied by Vector regardless of how many lanes are populated: a single
// seed is simply a one-lane batch, so filter code never knows which mode is
// active.
type Context interface {
	// Valid returns the mask of populated lanes.
	Valid() lane.Mask

	// Voucher draws the voucher offered at ante, per lane. This is the plain
	// (no-activation) draw; activation semantics exist only in the scalar
	// verification phase.
	Voucher(ante int) [lane.Width]int

	// Tags draws the small-blind then the big-blind tag for ante, per lane.
	Tags(ante int) (small, big [lane.Width]int)

	// Boss draws the boss for ante, per lane. Antes must be visited strictly
	// in ascending order within the context's lifetime.
	Boss(ante int) [lane.Width]int
}

// Vector is the wide-lane search context: up to lane.Width seeds evaluated
// in lockstep. NOT safe for concurrent use.
type Vector struct {
	src        *lane.Source
	seeds      []string
	bossCursor int
}

var _ Context = (*Vector)(nil)

// NewVector builds a vector context over up to lane.Width equal-length
// seeds.
func NewVector(seeds []string) *Vector {
	return &Vector{src: lane.NewSource(seeds), seeds: seeds}
}

// Valid returns the mask of populated lanes.
func (v *Vector) Valid() lane.Mask { return v.src.Valid() }

// Seed returns the seed occupying lane i.
func (v *Vector) Seed(i int) string { return v.seeds[i] }

// Voucher draws the voucher offered at ante for every lane.
func (v *Vector) Voucher(ante int) [lane.Width]int {
	return v.src.Stream(keyVoucher(ante)).NextIndex(content.Count(content.CategoryVoucher))
}

// Tags draws the small-blind tag then the big-blind tag for ante.
func (v *Vector) Tags(ante int) (small, big [lane.Width]int) {
	st := v.src.Stream(keyTag(ante))
	n := content.Count(content.CategoryTag)
	small = st.NextIndex(n)
	big = st.NextIndex(n)
	return small, big
}

// Boss draws the boss for ante for every lane. The boss stream is one
// cursor for the whole context; skipping or repeating an ante is a defect
// and panics.
func (v *Vector) Boss(ante int) [lane.Width]int {
	if ante != v.bossCursor+1 {
		panic("game: boss stream advanced out of order")
	}
	v.bossCursor = ante
	return v.src.Stream(keyBoss).NextIndex(content.Count(content.CategoryBoss))
}
