package filter

import (
	"fmt"

	"github.com/hupe1980/seedforge/internal/content"
	"github.com/hupe1980/seedforge/internal/state"
)

// Kind is a clause's polarity.
type Kind uint8

const (
	// Must clauses all have to match for a seed to be a Match.
	Must Kind = iota
	// Should clauses never gate the verdict; each satisfied clause adds its
	// weight to the seed's score.
	Should
	// MustNot clauses reject the seed when any of them matches.
	MustNot
)

func (k Kind) String() string {
	switch k {
	case Must:
		return "must"
	case Should:
		return "should"
	case MustNot:
		return "must_not"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// AnteBit returns the ante-mask bit for ante (1-based).
func AnteBit(ante int) uint64 { return 1 << (ante - 1) }

// AnteMask builds an ante mask from explicit ante numbers.
func AnteMask(antes ...int) uint64 {
	var m uint64
	for _, a := range antes {
		m |= AnteBit(a)
	}
	return m
}

// SlotMask builds a slot mask from explicit slot indices (0-based).
func SlotMask(slots ...int) uint64 {
	var m uint64
	for _, s := range slots {
		m |= 1 << s
	}
	return m
}

// Clause is one filter criterion, already parsed into enum/bitmask form.
// String parsing lives in the config package, outside the core.
type Clause struct {
	// Category is the content category the clause inspects.
	Category content.Category

	// Values is the OR-list of wanted table indices within Category. An
	// empty list is only valid together with a rarity wildcard.
	Values []int

	// Rarity is the wildcard constraint for joker categories: any item of
	// this rarity satisfies the clause. RarityAny means no wildcard.
	Rarity content.Rarity

	// Edition constrains shop-joker editions. EditionAny means
	// unconstrained.
	Edition content.Edition

	// Antes is the set of antes the match may occur in, bit (a-1) for ante
	// a. An empty mask means the clause applies to no ante and never
	// matches, unless the filter's EmptyAnteMeansAll policy is set.
	Antes uint64

	// Slots is the set of positions the match may occur in. For tags bit 0
	// is the small blind and bit 1 the big blind; for shop categories bits
	// index shop slots; for pack categories bits index flattened pack-card
	// positions. Zero means any position.
	Slots uint64

	// Invert negates the clause. All clauses of one category group must
	// agree on this flag.
	Invert bool

	// Weight is the score contribution of a satisfied Should clause.
	// Defaults to 1.
	Weight int
}

// matchesValue reports whether a drawn table index satisfies the clause's
// wanted-value specification (ignoring edition and position).
func (c *Clause) matchesValue(idx int) bool {
	if c.Rarity != content.RarityAny && c.Category == content.CategoryJoker {
		if content.JokerRarity(idx) != c.Rarity {
			return false
		}
		if len(c.Values) == 0 {
			return true
		}
	}
	if c.Rarity != content.RarityAny && c.Category == content.CategorySoulJoker && len(c.Values) == 0 {
		// Every soul joker is legendary; the wildcard accepts any of them.
		return true
	}
	for _, v := range c.Values {
		if v == idx {
			return true
		}
	}
	return false
}

// matchesEdition reports whether a shop item's edition satisfies the clause.
func (c *Clause) matchesEdition(e content.Edition) bool {
	return c.Edition == content.EditionAny || c.Edition == e
}

// anteSet reports whether the clause applies to ante.
func (c *Clause) anteSet(ante int) bool {
	return c.Antes&AnteBit(ante) != 0
}

// slotSet reports whether the clause applies to position slot.
func (c *Clause) slotSet(slot int) bool {
	return c.Slots == 0 || c.Slots&(1<<slot) != 0
}

// maxAnte returns the highest ante in the clause's mask, 0 for an empty
// mask.
func (c *Clause) maxAnte() int {
	for a := state.MaxAntes; a >= 1; a-- {
		if c.anteSet(a) {
			return a
		}
	}
	return 0
}

// minAnte returns the lowest ante in the clause's mask, 0 for an empty
// mask.
func (c *Clause) minAnte() int {
	for a := 1; a <= state.MaxAntes; a++ {
		if c.anteSet(a) {
			return a
		}
	}
	return 0
}
