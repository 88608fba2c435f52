package content

import "fmt"

// Item tables. Order matters: a draw maps a stream value to an index into
// these slices, so reordering entries changes every seed's content.

var vouchers = []string{
	"Overstock", "Overstock Plus", "Clearance Sale", "Liquidation",
	"Hone", "Glow Up", "Reroll Surplus", "Reroll Glut",
	"Crystal Ball", "Omen Globe", "Telescope", "Observatory",
	"Grabber", "Nacho Tong", "Wasteful", "Recyclomancy",
	"Tarot Merchant", "Tarot Tycoon", "Planet Merchant", "Planet Tycoon",
	"Seed Money", "Money Tree", "Blank", "Antimatter",
	"Magic Trick", "Illusion", "Hieroglyph", "Petroglyph",
	"Director's Cut", "Retcon", "Paint Brush", "Palette",
}

var tags = []string{
	"Uncommon Tag", "Rare Tag", "Negative Tag", "Foil Tag",
	"Holographic Tag", "Polychrome Tag", "Investment Tag", "Voucher Tag",
	"Boss Tag", "Standard Tag", "Charm Tag", "Meteor Tag",
	"Buffoon Tag", "Handy Tag", "Garbage Tag", "Ethereal Tag",
	"Coupon Tag", "Double Tag", "Juggle Tag", "D6 Tag",
	"Top-up Tag", "Speed Tag", "Orbital Tag", "Economy Tag",
}

var bosses = []string{
	"The Hook", "The Ox", "The House", "The Wall", "The Wheel",
	"The Arm", "The Club", "The Fish", "The Psychic", "The Goad",
	"The Water", "The Window", "The Manacle", "The Eye", "The Mouth",
	"The Plant", "The Serpent", "The Pillar", "The Needle", "The Head",
	"The Tooth", "The Flint", "The Mark", "Amber Acorn", "Verdant Leaf",
	"Violet Vessel", "Crimson Heart", "Cerulean Bell",
}

var tarots = []string{
	"The Fool", "The Magician", "The High Priestess", "The Empress",
	"The Emperor", "The Hierophant", "The Lovers", "The Chariot",
	"Justice", "The Hermit", "The Wheel of Fortune", "Strength",
	"The Hanged Man", "Death", "Temperance", "The Devil",
	"The Tower", "The Star", "The Moon", "The Sun",
	"Judgement", "The World",
}

var planets = []string{
	"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn",
	"Uranus", "Neptune", "Pluto", "Planet X", "Ceres", "Eris",
}

var spectrals = []string{
	"Familiar", "Grim", "Incantation", "Talisman", "Aura", "Wraith",
	"Sigil", "Ouija", "Ectoplasm", "Immolate", "Ankh", "Deja Vu",
	"Hex", "Trance", "Medium", "Cryptid", "The Soul", "Black Hole",
}

var jokersCommon = []string{
	"Joker", "Greedy Joker", "Lusty Joker", "Wrathful Joker",
	"Gluttonous Joker", "Jolly Joker", "Zany Joker", "Mad Joker",
	"Crazy Joker", "Droll Joker", "Sly Joker", "Wily Joker",
	"Clever Joker", "Devious Joker", "Crafty Joker", "Half Joker",
	"Credit Card", "Banner", "Mystic Summit", "Misprint",
}

var jokersUncommon = []string{
	"Joker Stencil", "Four Fingers", "Mime", "Ceremonial Dagger",
	"Marble Joker", "Loyalty Card", "Dusk", "Fibonacci",
	"Steel Joker", "Hack", "Pareidolia", "Gros Michel",
	"Even Steven", "Odd Todd", "Scholar",
}

var jokersRare = []string{
	"The Duo", "The Trio", "The Family", "The Order", "The Tribe",
	"Blueprint", "Brainstorm", "Invisible Joker", "Baron", "Obelisk",
}

var jokersLegendary = []string{
	"Canio", "Triboulet", "Yorick", "Chicot", "Perkeo",
}

var playingCards = buildPlayingCards()

func buildPlayingCards() []string {
	ranks := []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	suits := []string{"C", "D", "H", "S"}
	cards := make([]string, 0, len(ranks)*len(suits))
	for _, s := range suits {
		for _, r := range ranks {
			cards = append(cards, r+s)
		}
	}
	return cards
}

// tables indexes the per-category name slices. CategoryJoker spans all
// non-legendary rarities concatenated; JokerTable selects one rarity tier.
var tables [NumCategories][]string

var lookups [NumCategories]map[string]int

func init() {
	tables[CategoryVoucher] = vouchers
	tables[CategoryTag] = tags
	tables[CategoryBoss] = bosses
	tables[CategoryTarot] = tarots
	tables[CategoryPlanet] = planets
	tables[CategorySpectral] = spectrals
	tables[CategoryPlayingCard] = playingCards
	tables[CategorySoulJoker] = jokersLegendary

	joker := make([]string, 0, len(jokersCommon)+len(jokersUncommon)+len(jokersRare))
	joker = append(joker, jokersCommon...)
	joker = append(joker, jokersUncommon...)
	joker = append(joker, jokersRare...)
	tables[CategoryJoker] = joker

	for c := Category(0); c < NumCategories; c++ {
		m := make(map[string]int, len(tables[c]))
		for i, name := range tables[c] {
			m[name] = i
		}
		lookups[c] = m
	}
}

// Count returns the number of items in the category's table.
func Count(c Category) int { return len(tables[c]) }

// Name returns the item name at index idx of the category's table.
func Name(c Category, idx int) string {
	t := tables[c]
	if idx < 0 || idx >= len(t) {
		return fmt.Sprintf("%s(%d)", c, idx)
	}
	return t[idx]
}

// Lookup resolves an item name to its table index within the category.
func Lookup(c Category, name string) (int, bool) {
	idx, ok := lookups[c][name]
	return idx, ok
}

// JokerTable returns the name table for one joker rarity tier.
func JokerTable(r Rarity) []string {
	switch r {
	case RarityCommon:
		return jokersCommon
	case RarityUncommon:
		return jokersUncommon
	case RarityRare:
		return jokersRare
	case RarityLegendary:
		return jokersLegendary
	default:
		return tables[CategoryJoker]
	}
}

// JokerRarity returns the rarity tier of a CategoryJoker table index.
func JokerRarity(idx int) Rarity {
	switch {
	case idx < len(jokersCommon):
		return RarityCommon
	case idx < len(jokersCommon)+len(jokersUncommon):
		return RarityUncommon
	default:
		return RarityRare
	}
}

// jokerOffset returns the CategoryJoker table offset of a rarity tier.
func jokerOffset(r Rarity) int {
	switch r {
	case RarityUncommon:
		return len(jokersCommon)
	case RarityRare:
		return len(jokersCommon) + len(jokersUncommon)
	default:
		return 0
	}
}

// JokerIndex converts a within-tier index to a CategoryJoker table index.
func JokerIndex(r Rarity, tierIdx int) int {
	return jokerOffset(r) + tierIdx
}

// SoulSpectralIndex is the table index of the spectral card whose appearance
// in a pack triggers a legendary joker draw. Derived from the spectrals slice
// itself: the lookup maps are not built until init runs, after all package
// variables.
var SoulSpectralIndex = func() int {
	for i, name := range spectrals {
		if name == "The Soul" {
			return i
		}
	}
	panic("content: spectral table missing The Soul")
}()
