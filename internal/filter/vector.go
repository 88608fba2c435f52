package filter

import (
	"github.com/hupe1980/seedforge/internal/content"
	"github.com/hupe1980/seedforge/internal/game"
	"github.com/hupe1980/seedforge/internal/lane"
)

// vectorOrder fixes the category evaluation order of the prefilter phase.
// Each category owns independent streams, so the order is free to choose;
// it is fixed so batches are reproducible.
var vectorOrder = [...]content.Category{
	content.CategoryVoucher,
	content.CategoryTag,
	content.CategoryBoss,
}

// Prefilter runs the vector phase over one batch and returns the mask of
// lanes that survive every vector-eligible group. Lanes outside
// ctx.Valid() never survive.
//
// The result is conservative: a surviving lane may still be rejected by
// scalar verification, but a dropped lane can never be a match.
func (f *Filter) Prefilter(ctx game.Context) lane.Mask {
	running := ctx.Valid()
	for _, cat := range vectorOrder {
		groups := f.vectorPlan[cat]
		if len(groups) == 0 {
			continue
		}
		if running.None() {
			break // short-circuit: nothing left to reject
		}
		running = f.prefilterCategory(ctx, cat, groups, running)
	}
	return running
}

// prefilterCategory visits every ante the category's groups need, draws each
// (category, ante) exactly once, and folds the per-clause masks into the
// running mask.
func (f *Filter) prefilterCategory(ctx game.Context, cat content.Category, groups []*group, running lane.Mask) lane.Mask {
	// Per-group, per-clause accumulators: OR across antes.
	accs := make([][]lane.Mask, len(groups))
	for i, g := range groups {
		accs[i] = make([]lane.Mask, len(g.clauses))
	}

	lo, hi := f.categoryAnteRange(cat, groups)
	for ante := lo; ante <= hi; ante++ {
		if cat != content.CategoryBoss && f.catAntes[cat]&AnteBit(ante) == 0 {
			continue // no clause of any polarity cares about this ante
		}

		switch cat {
		case content.CategoryVoucher:
			idx := ctx.Voucher(ante)
			for i, g := range groups {
				accumulate(accs[i], g, ante, func(c *Clause, m *lane.Mask) {
					matchLanes(&idx, c, m)
				})
			}
		case content.CategoryTag:
			small, big := ctx.Tags(ante)
			for i, g := range groups {
				accumulate(accs[i], g, ante, func(c *Clause, m *lane.Mask) {
					if c.slotSet(0) {
						matchLanes(&small, c, m)
					}
					if c.slotSet(1) {
						matchLanes(&big, c, m)
					}
				})
			}
		case content.CategoryBoss:
			// The boss stream must advance for every ante up to the last one
			// a clause needs, even when no clause looks at this ante.
			idx := ctx.Boss(ante)
			for i, g := range groups {
				accumulate(accs[i], g, ante, func(c *Clause, m *lane.Mask) {
					matchLanes(&idx, c, m)
				})
			}
		}
	}

	for i, g := range groups {
		running &= combine(g, accs[i], ctx.Valid())
		if running.None() {
			break
		}
	}
	return running
}

// categoryAnteRange returns the ante span the category must visit. Bosses
// always start at ante 1 to keep the single boss stream in order.
func (f *Filter) categoryAnteRange(cat content.Category, groups []*group) (lo, hi int) {
	for _, g := range groups {
		if g.minAnte > 0 && (lo == 0 || g.minAnte < lo) {
			lo = g.minAnte
		}
		if g.maxAnte > hi {
			hi = g.maxAnte
		}
	}
	if cat == content.CategoryBoss && hi > 0 {
		lo = 1
	}
	if lo == 0 {
		lo, hi = 1, 0 // all ante masks empty: visit nothing
	}
	return lo, hi
}

// accumulate applies fn to every clause of g that covers ante, ORing into
// the clause's accumulator.
func accumulate(acc []lane.Mask, g *group, ante int, fn func(c *Clause, m *lane.Mask)) {
	for i := range g.clauses {
		c := &g.clauses[i]
		if !c.anteSet(ante) {
			continue
		}
		fn(c, &acc[i])
	}
}

// matchLanes ORs into m the lanes whose drawn index satisfies the clause's
// wanted values. Positional constraints are checked by the caller.
func matchLanes(idx *[lane.Width]int, c *Clause, m *lane.Mask) {
	for l := 0; l < lane.Width; l++ {
		if c.matchesValue(idx[l]) {
			*m |= lane.Bit(l)
		}
	}
}

// combine folds per-clause masks into the group's aggregate lane mask:
// must groups AND their clauses (negated when the group is inverted);
// must-not groups reject any lane where any clause matched. A group with
// zero clauses is vacuously true.
func combine(g *group, acc []lane.Mask, valid lane.Mask) lane.Mask {
	switch g.kind {
	case MustNot:
		var any lane.Mask
		for _, m := range acc {
			any |= m
		}
		return any.Not() & valid
	default: // Must
		all := valid
		for _, m := range acc {
			all &= m
		}
		if g.inverted {
			all = all.Not() & valid
		}
		return all
	}
}
