package config

import (
	"fmt"

	"github.com/hupe1980/seedforge/codec"
	"github.com/hupe1980/seedforge/internal/content"
	"github.com/hupe1980/seedforge/internal/filter"
	"github.com/hupe1980/seedforge/internal/game"
)

// Document is the user-facing filter description. Item, rarity, and edition
// names are strings here; Compile resolves them against the content tables.
type Document struct {
	// MinAnte and MaxAnte bound the search range. Defaults: 1 and 8.
	MinAnte int `json:"min_ante,omitempty"`
	MaxAnte int `json:"max_ante,omitempty"`

	// EmptyAnteMeansAll makes a clause without antes apply to every ante
	// in range instead of none.
	EmptyAnteMeansAll bool `json:"empty_ante_means_all,omitempty"`

	// Game overrides the generator shape replayed against.
	Game *GameDoc `json:"game,omitempty"`

	Must    []ClauseDoc `json:"must,omitempty"`
	Should  []ClauseDoc `json:"should,omitempty"`
	MustNot []ClauseDoc `json:"must_not,omitempty"`
}

// GameDoc mirrors game.Config with omittable fields.
type GameDoc struct {
	ShopSlots    int `json:"shop_slots,omitempty"`
	PacksPerAnte int `json:"packs_per_ante,omitempty"`
	PackSize     int `json:"pack_size,omitempty"`
	RerollCap    int `json:"reroll_cap,omitempty"`
}

// ClauseDoc is one criterion in document form.
type ClauseDoc struct {
	// Category is a stable category name: voucher, tag, boss, joker,
	// soul_joker, tarot, planet, spectral, playing_card.
	Category string `json:"category"`

	// Items is the OR-list of wanted item names.
	Items []string `json:"items,omitempty"`

	// Rarity is a joker rarity wildcard: common, uncommon, rare,
	// legendary.
	Rarity string `json:"rarity,omitempty"`

	// Edition constrains shop jokers: none, foil, holographic,
	// polychrome, negative.
	Edition string `json:"edition,omitempty"`

	// Antes lists the antes (1-based) the match may occur in.
	Antes []int `json:"antes,omitempty"`

	// Slots lists the positions (0-based) the match may occur in.
	Slots []int `json:"slots,omitempty"`

	// Invert negates the clause.
	Invert bool `json:"invert,omitempty"`

	// Weight is the score contribution of a satisfied should clause.
	Weight int `json:"weight,omitempty"`
}

// ParseDocument decodes a filter document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := codec.Default.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parse filter document: %w", err)
	}
	return &doc, nil
}

// Compile resolves all names and compiles the document into an executable
// filter. Resolution errors carry the offending clause position and name.
func (d *Document) Compile() (*filter.Filter, error) {
	opts := filter.Options{
		MinAnte:           d.MinAnte,
		MaxAnte:           d.MaxAnte,
		EmptyAnteMeansAll: d.EmptyAnteMeansAll,
	}
	if g := d.Game; g != nil {
		opts.Game = game.Config{
			ShopSlots:    g.ShopSlots,
			PacksPerAnte: g.PacksPerAnte,
			PackSize:     g.PackSize,
			RerollCap:    g.RerollCap,
		}
	}

	must, err := resolveClauses("must", d.Must)
	if err != nil {
		return nil, err
	}
	should, err := resolveClauses("should", d.Should)
	if err != nil {
		return nil, err
	}
	mustNot, err := resolveClauses("must_not", d.MustNot)
	if err != nil {
		return nil, err
	}

	return filter.New(must, should, mustNot, opts)
}

func resolveClauses(kind string, docs []ClauseDoc) ([]filter.Clause, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	out := make([]filter.Clause, 0, len(docs))
	for i, doc := range docs {
		c, err := doc.resolve()
		if err != nil {
			return nil, fmt.Errorf("config: %s[%d]: %w", kind, i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (doc *ClauseDoc) resolve() (filter.Clause, error) {
	cat, ok := content.ParseCategory(doc.Category)
	if !ok {
		return filter.Clause{}, fmt.Errorf("unknown category %q", doc.Category)
	}

	c := filter.Clause{
		Category: cat,
		Invert:   doc.Invert,
		Weight:   doc.Weight,
	}

	for _, name := range doc.Items {
		idx, ok := content.Lookup(cat, name)
		if !ok {
			return filter.Clause{}, fmt.Errorf("unknown %s %q", cat, name)
		}
		c.Values = append(c.Values, idx)
	}

	if doc.Rarity != "" {
		r, ok := content.ParseRarity(doc.Rarity)
		if !ok {
			return filter.Clause{}, fmt.Errorf("unknown rarity %q", doc.Rarity)
		}
		c.Rarity = r
	}
	if doc.Edition != "" {
		e, ok := content.ParseEdition(doc.Edition)
		if !ok {
			return filter.Clause{}, fmt.Errorf("unknown edition %q", doc.Edition)
		}
		c.Edition = e
	}

	for _, a := range doc.Antes {
		if a < 1 || a > 64 {
			return filter.Clause{}, fmt.Errorf("ante %d out of range", a)
		}
		c.Antes |= filter.AnteBit(a)
	}
	for _, s := range doc.Slots {
		if s < 0 || s > 63 {
			return filter.Clause{}, fmt.Errorf("slot %d out of range", s)
		}
		c.Slots |= 1 << s
	}

	return c, nil
}
