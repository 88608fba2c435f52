// Package content models the target generator's content domain: the closed
// set of drawable categories and the identifier tables for every item each
// category can produce.
//
// All tables are constructed once during package init and are read-only
// afterwards; nothing in this package mutates shared state at runtime.
package content

import "fmt"

// Category identifies what kind of content a draw produces. The set is
// closed: every switch over Category in this module handles all values, so
// adding a category is a compile-time-checked change.
type Category uint8

const (
	CategoryVoucher Category = iota
	CategoryTag
	CategoryBoss
	CategoryJoker
	CategorySoulJoker
	CategoryTarot
	CategoryPlanet
	CategorySpectral
	CategoryPlayingCard

	NumCategories
)

var categoryNames = [NumCategories]string{
	CategoryVoucher:     "voucher",
	CategoryTag:         "tag",
	CategoryBoss:        "boss",
	CategoryJoker:       "joker",
	CategorySoulJoker:   "soul_joker",
	CategoryTarot:       "tarot",
	CategoryPlanet:      "planet",
	CategorySpectral:    "spectral",
	CategoryPlayingCard: "playing_card",
}

func (c Category) String() string {
	if c < NumCategories {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// ParseCategory resolves a category by its stable name.
func ParseCategory(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name {
			return Category(c), true
		}
	}
	return 0, false
}

// Vectorizable reports whether the category can be evaluated in the vector
// prefilter phase. Categories that need duplicate-prevention or pack-content
// scanning are deferred to scalar verification.
func (c Category) Vectorizable() bool {
	switch c {
	case CategoryVoucher, CategoryTag, CategoryBoss:
		return true
	case CategoryJoker, CategorySoulJoker, CategoryTarot, CategoryPlanet,
		CategorySpectral, CategoryPlayingCard:
		return false
	default:
		return false
	}
}

// Rarity tiers for jokers. RarityAny is the wildcard used by clauses.
type Rarity uint8

const (
	RarityAny Rarity = iota
	RarityCommon
	RarityUncommon
	RarityRare
	RarityLegendary
)

var rarityNames = [...]string{"any", "common", "uncommon", "rare", "legendary"}

func (r Rarity) String() string {
	if int(r) < len(rarityNames) {
		return rarityNames[r]
	}
	return fmt.Sprintf("Rarity(%d)", uint8(r))
}

// ParseRarity resolves a rarity by its stable name.
func ParseRarity(name string) (Rarity, bool) {
	for i, n := range rarityNames {
		if n == name {
			return Rarity(i), true
		}
	}
	return 0, false
}

// Edition is an optional attribute of shop jokers. EditionAny means the
// clause does not constrain the edition.
type Edition uint8

const (
	EditionAny Edition = iota
	EditionNone
	EditionFoil
	EditionHolographic
	EditionPolychrome
	EditionNegative
)

var editionNames = [...]string{"any", "none", "foil", "holographic", "polychrome", "negative"}

func (e Edition) String() string {
	if int(e) < len(editionNames) {
		return editionNames[e]
	}
	return fmt.Sprintf("Edition(%d)", uint8(e))
}

// ParseEdition resolves an edition by its stable name.
func ParseEdition(name string) (Edition, bool) {
	for i, n := range editionNames {
		if n == name {
			return Edition(i), true
		}
	}
	return 0, false
}
