package game

import "github.com/hupe1980/seedforge/internal/content"

// Config carries the generator parameters a search replays against.
type Config struct {
	// ShopSlots is the number of shop positions visited per ante. The shop
	// loop draws one item per slot unconditionally.
	ShopSlots int

	// PacksPerAnte is the number of reward packs offered per ante.
	PacksPerAnte int

	// PackSize is the number of cards in one pack.
	PackSize int

	// RerollCap bounds duplicate-prevention redraws. When the cap is hit the
	// last drawn item is accepted as-is; this is an expected condition, not
	// an error.
	RerollCap int
}

// DefaultConfig returns the observed generator configuration.
func DefaultConfig() Config {
	return Config{
		ShopSlots:    4,
		PacksPerAnte: 2,
		PackSize:     3,
		RerollCap:    8,
	}
}

// ApplyDefaults fills zero fields with the observed configuration.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.ShopSlots <= 0 {
		c.ShopSlots = d.ShopSlots
	}
	if c.PacksPerAnte <= 0 {
		c.PacksPerAnte = d.PacksPerAnte
	}
	if c.PackSize <= 0 {
		c.PackSize = d.PackSize
	}
	if c.RerollCap <= 0 {
		c.RerollCap = d.RerollCap
	}
}

// ShopItem is one drawn shop position.
type ShopItem struct {
	Category content.Category // CategoryJoker, CategoryTarot, or CategoryPlanet
	Index    int              // table index within Category
	Rarity   content.Rarity   // set for jokers, RarityAny otherwise
	Edition  content.Edition  // set for jokers, EditionNone otherwise
}

// PackKind enumerates reward-pack flavors.
type PackKind uint8

const (
	PackArcana PackKind = iota
	PackCelestial
	PackSpectral
	PackStandard
	PackBuffoon
)

var packKindNames = [...]string{"Arcana", "Celestial", "Spectral", "Standard", "Buffoon"}

func (k PackKind) String() string {
	if int(k) < len(packKindNames) {
		return packKindNames[k]
	}
	return "PackKind(?)"
}

// PackCard is one card inside a reward pack. A card with Category
// CategorySoulJoker is the rare-item case subject to ownership bookkeeping.
type PackCard struct {
	Category content.Category
	Index    int
}

// Pack is one drawn reward pack.
type Pack struct {
	Kind  PackKind
	Cards []PackCard
}

// Draw thresholds of the target generator. The shop type roll and the soul
// roll compare the raw stream value against these cut points.
const (
	shopJokerCut = 0.6 // v < cut          -> joker
	shopTarotCut = 0.8 // cut <= v < 0.8   -> tarot, else planet

	rarityCommonCut   = 0.7
	rarityUncommonCut = 0.95

	editionFoilCut  = 0.96
	editionHoloCut  = 0.98
	editionPolyCut  = 0.99
	editionNegCut   = 0.997

	soulCut = 0.997 // v > cut -> the pack card becomes a legendary joker

	packArcanaCut    = 0.30
	packCelestialCut = 0.55
	packSpectralCut  = 0.63
	packStandardCut  = 0.88 // else Buffoon
)

func shopTypeFor(v float64) content.Category {
	switch {
	case v < shopJokerCut:
		return content.CategoryJoker
	case v < shopTarotCut:
		return content.CategoryTarot
	default:
		return content.CategoryPlanet
	}
}

func rarityFor(v float64) content.Rarity {
	switch {
	case v < rarityCommonCut:
		return content.RarityCommon
	case v < rarityUncommonCut:
		return content.RarityUncommon
	default:
		return content.RarityRare
	}
}

func editionFor(v float64) content.Edition {
	switch {
	case v > editionNegCut:
		return content.EditionNegative
	case v > editionPolyCut:
		return content.EditionPolychrome
	case v > editionHoloCut:
		return content.EditionHolographic
	case v > editionFoilCut:
		return content.EditionFoil
	default:
		return content.EditionNone
	}
}

func packKindFor(v float64) PackKind {
	switch {
	case v < packArcanaCut:
		return PackArcana
	case v < packCelestialCut:
		return PackCelestial
	case v < packSpectralCut:
		return PackSpectral
	case v < packStandardCut:
		return PackStandard
	default:
		return PackBuffoon
	}
}
