package filter

import (
	"github.com/hupe1980/seedforge/internal/content"
	"github.com/hupe1980/seedforge/internal/game"
	"github.com/hupe1980/seedforge/internal/state"
)

// Verdict is the resolved outcome of one seed.
type Verdict struct {
	Match bool
	Score int
}

// verification is the per-seed evaluation pass: one scalar context, one
// fresh run state, and per-clause satisfaction flags. It is created for one
// seed and discarded with the verdict.
type verification struct {
	f   *Filter
	ctx *game.Scalar
	run *state.Run
	sat map[*group][]bool
}

// Verify replays seed through every ante the filter's clauses require and
// resolves the final verdict: Match iff all must groups are satisfied and no
// must-not clause matched, with the aggregate should score.
func (f *Filter) Verify(seed string) Verdict {
	return f.verify(game.NewScalar(seed, f.opts.Game))
}

func (f *Filter) verify(ctx *game.Scalar) Verdict {
	v := &verification{
		f:   f,
		ctx: ctx,
		run: state.NewRun(),
		sat: make(map[*group][]bool, len(f.groups)),
	}
	for _, g := range f.groups {
		v.sat[g] = make([]bool, len(g.clauses))
	}

	hi := f.maxAnte
	if f.bossMaxAnte > hi {
		hi = f.bossMaxAnte
	}
	for ante := 1; ante <= hi; ante++ {
		if rejected := v.visitAnte(ante); rejected {
			return Verdict{}
		}
	}
	return v.resolve()
}

// visitAnte draws every category the filter needs at ante, in the canonical
// order boss, voucher, tags, shop, packs, and evaluates the clauses that
// cover it. It reports true as soon as a must-not clause matches.
func (v *verification) visitAnte(ante int) (rejected bool) {
	f := v.f
	bit := AnteBit(ante)

	// The boss stream is one cursor for the whole run: it advances for every
	// ante up to the last one a boss clause needs, matched or not.
	if f.bossMaxAnte >= ante {
		idx := v.ctx.Boss(ante, v.run)
		if v.evalIndexed(content.CategoryBoss, ante, idx, -1) {
			return true
		}
	}

	if f.catAntes[content.CategoryVoucher]&bit != 0 {
		idx := v.ctx.Voucher(ante, v.run)
		if v.evalVoucher(ante, idx) {
			return true
		}
	}

	if f.catAntes[content.CategoryTag]&bit != 0 {
		small, big := v.ctx.Tags(ante)
		if v.evalIndexed(content.CategoryTag, ante, small, 0) {
			return true
		}
		if v.evalIndexed(content.CategoryTag, ante, big, 1) {
			return true
		}
	}

	if v.shopNeeded(ante) {
		for slot, item := range v.ctx.ShopItems(ante) {
			if v.evalShopItem(ante, slot, item) {
				return true
			}
		}
	}

	if v.packsNeeded(ante) {
		packSize := f.opts.Game.PackSize
		for p, pack := range v.ctx.Packs(ante, v.run) {
			for j, card := range pack.Cards {
				if v.evalPackCard(ante, p*packSize+j, card) {
					return true
				}
			}
		}
	}
	return false
}

func (v *verification) shopNeeded(ante int) bool {
	bit := AnteBit(ante)
	return (v.f.catAntes[content.CategoryJoker]|
		v.f.catAntes[content.CategoryTarot]|
		v.f.catAntes[content.CategoryPlanet])&bit != 0
}

func (v *verification) packsNeeded(ante int) bool {
	bit := AnteBit(ante)
	return (v.f.catAntes[content.CategoryJoker]|
		v.f.catAntes[content.CategoryTarot]|
		v.f.catAntes[content.CategoryPlanet]|
		v.f.catAntes[content.CategorySpectral]|
		v.f.catAntes[content.CategoryPlayingCard]|
		v.f.catAntes[content.CategorySoulJoker])&bit != 0
}

// evalIndexed evaluates a plain indexed draw (boss, tag) against every group
// of the category. slot is -1 when the category has no position concept.
func (v *verification) evalIndexed(cat content.Category, ante, idx, slot int) (rejected bool) {
	for _, g := range v.f.groups {
		if g.cat != cat {
			continue
		}
		for i := range g.clauses {
			c := &g.clauses[i]
			if !c.anteSet(ante) || (slot >= 0 && !c.slotSet(slot)) {
				continue
			}
			if !c.matchesValue(idx) {
				continue
			}
			if g.kind == MustNot {
				return true
			}
			v.sat[g][i] = true
		}
	}
	return false
}

// evalVoucher is evalIndexed plus the activation side effect: a satisfied
// plain must clause redeems the voucher, which feeds the resample path of
// later voucher draws.
func (v *verification) evalVoucher(ante, idx int) (rejected bool) {
	for _, g := range v.f.groups {
		if g.cat != content.CategoryVoucher {
			continue
		}
		for i := range g.clauses {
			c := &g.clauses[i]
			if !c.anteSet(ante) || !c.matchesValue(idx) {
				continue
			}
			if g.kind == MustNot {
				return true
			}
			v.sat[g][i] = true
			if g.kind == Must && !g.inverted {
				v.run.ActivateVoucher(idx)
			}
		}
	}
	return false
}

// evalShopItem evaluates one drawn shop position against the shop-capable
// categories.
func (v *verification) evalShopItem(ante, slot int, item game.ShopItem) (rejected bool) {
	for _, g := range v.f.groups {
		if g.cat != item.Category {
			continue
		}
		for i := range g.clauses {
			c := &g.clauses[i]
			if !c.anteSet(ante) || !c.slotSet(slot) {
				continue
			}
			if !c.matchesValue(item.Index) {
				continue
			}
			if item.Category == content.CategoryJoker && !c.matchesEdition(item.Edition) {
				continue
			}
			if g.kind == MustNot {
				return true
			}
			v.sat[g][i] = true
		}
	}
	return false
}

// evalPackCard evaluates one drawn pack card. Soul jokers are the rare-item
// case: each produced soul joker occupies one (ante, position) slot, and at
// most one clause ever claims it; a slot consumed by an earlier clause is
// skipped for matching even though its draw already happened.
func (v *verification) evalPackCard(ante, pos int, card game.PackCard) (rejected bool) {
	if card.Category == content.CategorySoulJoker && v.run.SlotConsumed(ante, pos) {
		return false
	}

	// Must-not clauses see every produced card first: a must clause claiming
	// a soul slot stops the scan, and a rejection hidden behind that claim
	// would break the verdict.
	for _, g := range v.f.groups {
		if g.cat != card.Category || g.kind != MustNot {
			continue
		}
		for i := range g.clauses {
			c := &g.clauses[i]
			if c.anteSet(ante) && c.slotSet(pos) && c.matchesValue(card.Index) {
				return true
			}
		}
	}

	for _, g := range v.f.groups {
		if g.cat != card.Category || g.kind == MustNot {
			continue
		}
		for i := range g.clauses {
			c := &g.clauses[i]
			if !c.anteSet(ante) || !c.slotSet(pos) {
				continue
			}
			if !c.matchesValue(card.Index) {
				continue
			}
			if card.Category == content.CategorySoulJoker {
				if v.sat[g][i] {
					continue // clause already holds a different soul slot
				}
				if !v.run.ConsumeSlot(ante, pos) {
					continue
				}
				v.sat[g][i] = true
				// One card, one claim: stop after the first taker.
				return false
			}
			v.sat[g][i] = true
		}
	}
	return false
}

// resolve folds the satisfaction flags into the final verdict.
func (v *verification) resolve() Verdict {
	score := 0
	for _, g := range v.f.groups {
		flags := v.sat[g]
		switch g.kind {
		case Must:
			all := true
			for _, s := range flags {
				if !s {
					all = false
					break
				}
			}
			if g.inverted {
				all = !all
			}
			if !all {
				return Verdict{}
			}
		case Should:
			for i, s := range flags {
				if s {
					score += g.clauses[i].Weight
				}
			}
		case MustNot:
			// Matches reject inline in visitAnte; nothing to fold here.
		}
	}
	return Verdict{Match: true, Score: score}
}
