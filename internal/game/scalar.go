package game

import (
	"github.com/hupe1980/seedforge/internal/content"
	"github.com/hupe1980/seedforge/internal/rng"
	"github.com/hupe1980/seedforge/internal/state"
)

// spectralDrawCount bounds plain spectral draws at The Soul: it and the
// entries after it (Black Hole) are only produced through the soul roll.
var spectralDrawCount = content.SoulSpectralIndex

// Scalar replays one seed's draws with full run-state semantics. It is the
// backend of the scalar verification phase.
//
// Scalar owns every stream cursor it creates; callers never touch streams
// directly. NOT safe for concurrent use.
type Scalar struct {
	src *rng.Source
	cfg Config
}

// NewScalar creates a scalar context for seed.
func NewScalar(seed string, cfg Config) *Scalar {
	cfg.ApplyDefaults()
	return &Scalar{src: rng.NewSource(seed), cfg: cfg}
}

// Seed returns the context's seed.
func (s *Scalar) Seed() string { return s.src.Seed() }

// Voucher draws the voucher offered at ante. When run is non-nil and the
// drawn voucher is already active, the draw resamples from the same stream
// up to the reroll cap; the last draw is accepted if the cap is hit.
func (s *Scalar) Voucher(ante int, run *state.Run) int {
	st := s.src.Stream(keyVoucher(ante))
	n := content.Count(content.CategoryVoucher)
	idx := st.NextIndex(n)
	if run == nil {
		return idx
	}
	for i := 0; run.VoucherActive(idx) && i < s.cfg.RerollCap; i++ {
		idx = st.NextIndex(n)
	}
	return idx
}

// Tags draws the small-blind tag then the big-blind tag for ante, in that
// order.
func (s *Scalar) Tags(ante int) (small, big int) {
	st := s.src.Stream(keyTag(ante))
	n := content.Count(content.CategoryTag)
	small = st.NextIndex(n)
	big = st.NextIndex(n)
	return small, big
}

// Boss draws the boss for ante. The boss order is one stream for the whole
// run; run's boss cursor enforces that antes are visited strictly in order.
func (s *Scalar) Boss(ante int, run *state.Run) int {
	run.AdvanceBossCursor(ante)
	return s.src.Stream(keyBoss).NextIndex(content.Count(content.CategoryBoss))
}

// ShopItems visits every shop slot of ante, drawing one item per slot
// unconditionally. The draw sequence depends only on the seed, never on
// which filters are active.
func (s *Scalar) ShopItems(ante int) []ShopItem {
	items := make([]ShopItem, s.cfg.ShopSlots)
	typeStream := s.src.Stream(keyShopType(ante))
	for i := range items {
		switch shopTypeFor(typeStream.Next()) {
		case content.CategoryJoker:
			r := rarityFor(s.src.Stream(keyShopRarity(ante)).Next())
			tier := content.JokerTable(r)
			tierIdx := s.src.Stream(keyShopJoker(r.String(), ante)).NextIndex(len(tier))
			ed := editionFor(s.src.Stream(keyShopEdition(ante)).Next())
			items[i] = ShopItem{
				Category: content.CategoryJoker,
				Index:    content.JokerIndex(r, tierIdx),
				Rarity:   r,
				Edition:  ed,
			}
		case content.CategoryTarot:
			items[i] = ShopItem{
				Category: content.CategoryTarot,
				Index:    s.src.Stream(keyShopTarot(ante)).NextIndex(content.Count(content.CategoryTarot)),
			}
		default:
			items[i] = ShopItem{
				Category: content.CategoryPlanet,
				Index:    s.src.Stream(keyShopPlanet(ante)).NextIndex(content.Count(content.CategoryPlanet)),
			}
		}
	}
	return items
}

// Packs draws every reward pack of ante with its full contents. Soul rolls
// and legendary-joker duplicate prevention consult run when non-nil.
func (s *Scalar) Packs(ante int, run *state.Run) []Pack {
	packs := make([]Pack, s.cfg.PacksPerAnte)
	kindStream := s.src.Stream(keyPackKind(ante))
	for i := range packs {
		kind := packKindFor(kindStream.Next())
		cards := make([]PackCard, s.cfg.PackSize)
		for j := range cards {
			cards[j] = s.packCard(ante, kind, run)
		}
		packs[i] = Pack{Kind: kind, Cards: cards}
	}
	return packs
}

func (s *Scalar) packCard(ante int, kind PackKind, run *state.Run) PackCard {
	switch kind {
	case PackArcana:
		if s.src.Stream(keySoul(ante)).Next() > soulCut {
			return PackCard{Category: content.CategorySoulJoker, Index: s.soulJoker(ante, run)}
		}
		return PackCard{
			Category: content.CategoryTarot,
			Index:    s.src.Stream(keyPackTarot(ante)).NextIndex(content.Count(content.CategoryTarot)),
		}
	case PackSpectral:
		if s.src.Stream(keySoul(ante)).Next() > soulCut {
			return PackCard{Category: content.CategorySoulJoker, Index: s.soulJoker(ante, run)}
		}
		return PackCard{
			Category: content.CategorySpectral,
			Index:    s.src.Stream(keyPackSpectral(ante)).NextIndex(spectralDrawCount),
		}
	case PackCelestial:
		return PackCard{
			Category: content.CategoryPlanet,
			Index:    s.src.Stream(keyPackPlanet(ante)).NextIndex(content.Count(content.CategoryPlanet)),
		}
	case PackStandard:
		return PackCard{
			Category: content.CategoryPlayingCard,
			Index:    s.src.Stream(keyPackCard(ante)).NextIndex(content.Count(content.CategoryPlayingCard)),
		}
	default: // PackBuffoon
		st := s.src.Stream(keyPackJoker(ante))
		r := rarityFor(st.Next())
		tier := content.JokerTable(r)
		return PackCard{
			Category: content.CategoryJoker,
			Index:    content.JokerIndex(r, st.NextIndex(len(tier))),
		}
	}
}

// soulJoker draws a legendary joker with duplicate prevention: an owned
// joker forces a redraw, bounded by the reroll cap, after which the last
// drawn joker is accepted as-is.
func (s *Scalar) soulJoker(ante int, run *state.Run) int {
	st := s.src.Stream(keySoulJoker(ante))
	n := content.Count(content.CategorySoulJoker)
	idx := st.NextIndex(n)
	if run == nil {
		return idx
	}
	for i := 0; !run.CanObtainUnique(idx) && i < s.cfg.RerollCap; i++ {
		idx = st.NextIndex(n)
	}
	// Produced jokers count as owned from here on, so a later soul roll in
	// the same replay cannot produce the same legendary twice.
	run.MarkUniqueOwned(idx)
	return idx
}
