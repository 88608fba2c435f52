package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seedforge/internal/content"
	"github.com/hupe1980/seedforge/internal/lane"
	"github.com/hupe1980/seedforge/internal/state"
)

var testSeeds = []string{"ALEEB", "7LB2W", "ZZZZZ", "11111", "QWERT", "MNBVC", "99999", "AAAAA"}

// Vector and scalar mode replay the same streams; the plain (no-state)
// draws must agree lane for lane.
func TestVectorMatchesScalar(t *testing.T) {
	vec := NewVector(testSeeds)
	scalars := make([]*Scalar, len(testSeeds))
	for i, s := range testSeeds {
		scalars[i] = NewScalar(s, DefaultConfig())
	}

	t.Run("voucher", func(t *testing.T) {
		for ante := 1; ante <= 4; ante++ {
			got := vec.Voucher(ante)
			for i, sc := range scalars {
				require.Equal(t, sc.Voucher(ante, nil), got[i], "seed %s ante %d", testSeeds[i], ante)
			}
		}
	})

	t.Run("tags", func(t *testing.T) {
		for ante := 1; ante <= 4; ante++ {
			gotSmall, gotBig := vec.Tags(ante)
			for i, sc := range scalars {
				small, big := sc.Tags(ante)
				require.Equal(t, small, gotSmall[i], "seed %s ante %d small", testSeeds[i], ante)
				require.Equal(t, big, gotBig[i], "seed %s ante %d big", testSeeds[i], ante)
			}
		}
	})

	t.Run("boss", func(t *testing.T) {
		runs := make([]*state.Run, len(scalars))
		for i := range runs {
			runs[i] = state.NewRun()
		}
		for ante := 1; ante <= 4; ante++ {
			got := vec.Boss(ante)
			for i, sc := range scalars {
				require.Equal(t, sc.Boss(ante, runs[i]), got[i], "seed %s ante %d", testSeeds[i], ante)
			}
		}
	})
}

func TestVectorBossOutOfOrderPanics(t *testing.T) {
	vec := NewVector(testSeeds[:2])
	vec.Boss(1)
	assert.Panics(t, func() { vec.Boss(3) })
}

func TestScalarDeterministic(t *testing.T) {
	// Two independent replays of one seed produce identical content.
	a := NewScalar("ALEEB", DefaultConfig())
	b := NewScalar("ALEEB", DefaultConfig())

	for ante := 1; ante <= 8; ante++ {
		assert.Equal(t, a.Voucher(ante, nil), b.Voucher(ante, nil))
		assert.Equal(t, a.ShopItems(ante), b.ShopItems(ante))
		assert.Equal(t, a.Packs(ante, state.NewRun()), b.Packs(ante, state.NewRun()))
	}
}

func TestScalarDrawOrderIndependentOfInspection(t *testing.T) {
	// The shop draw sequence depends only on the seed: whether earlier
	// antes were inspected must not change a later ante's content. Each
	// stream key is per-ante, so inspecting ante 3 alone equals inspecting
	// antes 1..3 in order.
	full := NewScalar("7LB2WVPK", DefaultConfig())
	_ = full.ShopItems(1)
	_ = full.ShopItems(2)
	want := full.ShopItems(3)

	direct := NewScalar("7LB2WVPK", DefaultConfig())
	assert.Equal(t, want, direct.ShopItems(3))
}

func TestVoucherResample(t *testing.T) {
	cfg := DefaultConfig()

	// Find the plain draw, activate it, then confirm the stateful draw
	// moves off it (or legitimately repeats only if the resample cap is
	// exhausted, which cannot happen with a single active voucher and a
	// cap of 8 unless the stream repeats, in which case the loop still
	// terminates).
	plain := NewScalar("ALEEB", cfg).Voucher(1, nil)

	run := state.NewRun()
	run.ActivateVoucher(plain)
	resampled := NewScalar("ALEEB", cfg).Voucher(1, run)
	assert.NotEqual(t, plain, resampled)

	// Without activation the stateful draw equals the plain draw.
	assert.Equal(t, plain, NewScalar("ALEEB", cfg).Voucher(1, state.NewRun()))
}

func TestShopItemsShape(t *testing.T) {
	cfg := DefaultConfig()
	sc := NewScalar("TUTORIAL", cfg)

	items := sc.ShopItems(1)
	require.Len(t, items, cfg.ShopSlots)
	for _, item := range items {
		switch item.Category {
		case content.CategoryJoker:
			assert.GreaterOrEqual(t, item.Index, 0)
			assert.Less(t, item.Index, content.Count(content.CategoryJoker))
			assert.Equal(t, content.JokerRarity(item.Index), item.Rarity)
		case content.CategoryTarot, content.CategoryPlanet:
			assert.GreaterOrEqual(t, item.Index, 0)
			assert.Less(t, item.Index, content.Count(item.Category))
			assert.Equal(t, content.RarityAny, item.Rarity)
		default:
			t.Fatalf("unexpected shop category %s", item.Category)
		}
	}
}

func TestPacksShape(t *testing.T) {
	cfg := DefaultConfig()
	sc := NewScalar("TUTORIAL", cfg)
	run := state.NewRun()

	packs := sc.Packs(1, run)
	require.Len(t, packs, cfg.PacksPerAnte)
	for _, p := range packs {
		require.Len(t, p.Cards, cfg.PackSize)
		for _, c := range p.Cards {
			assert.GreaterOrEqual(t, c.Index, 0)
			assert.Less(t, c.Index, content.Count(c.Category))
			if c.Category == content.CategorySpectral {
				// The Soul and Black Hole never appear as plain draws.
				assert.Less(t, c.Index, content.SoulSpectralIndex)
			}
		}
	}
}

func TestSoulJokerDuplicatePrevention(t *testing.T) {
	cfg := DefaultConfig()
	sc := NewScalar("ALEEB", cfg)

	run := state.NewRun()
	first := sc.soulJoker(1, run)
	assert.False(t, run.CanObtainUnique(first))

	// A second soul draw in the same replay cannot produce the same
	// legendary while others remain obtainable.
	second := sc.soulJoker(2, run)
	assert.NotEqual(t, first, second)
}

func TestSingleSeedVectorLane(t *testing.T) {
	// One seed is a one-lane batch with the same draws.
	vec := NewVector([]string{"ALEEB"})
	require.Equal(t, lane.Mask(1), vec.Valid())

	sc := NewScalar("ALEEB", DefaultConfig())
	got := vec.Voucher(1)
	assert.Equal(t, sc.Voucher(1, nil), got[0])
}
