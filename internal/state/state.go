// Package state holds the per-seed mutable bookkeeping that preserves the
// target generator's invariants while a seed's draws are replayed: voucher
// activation, unique-item ownership, and per-ante consumption of the slots
// that can produce a rare item.
//
// A Run is created for exactly one scalar verification pass and discarded
// with that seed's verdict. Sharing or reusing a Run across seeds corrupts
// results by construction.
package state

import "github.com/hupe1980/seedforge/internal/content"

// MaxAntes bounds the ante index. Ante numbering is 1-based; index 0 of the
// per-ante arrays is unused.
const MaxAntes = 16

// SlotsPerAnte bounds the number of rare-item-producing slots in one ante.
const SlotsPerAnte = 64

// Run is the mutable state of one seed's replay. All operations are O(1)
// indexed lookups; none scan.
//
// Run is NOT safe for concurrent use.
type Run struct {
	activeVouchers []bool                     // indexed by voucher table index
	ownedUniques   []bool                     // indexed by CategorySoulJoker table index
	consumed       [MaxAntes + 1]uint64       // per-ante slot-consumption bitmaps
	bossCursor     int                        // last ante the boss stream was drawn for
}

// NewRun creates a fresh Run sized to the content tables.
func NewRun() *Run {
	return &Run{
		activeVouchers: make([]bool, content.Count(content.CategoryVoucher)),
		ownedUniques:   make([]bool, content.Count(content.CategorySoulJoker)),
	}
}

// VoucherActive reports whether voucher v has been activated.
func (r *Run) VoucherActive(v int) bool {
	return v >= 0 && v < len(r.activeVouchers) && r.activeVouchers[v]
}

// ActivateVoucher marks voucher v active.
func (r *Run) ActivateVoucher(v int) {
	if v >= 0 && v < len(r.activeVouchers) {
		r.activeVouchers[v] = true
	}
}

// CanObtainUnique reports whether unique item u is still obtainable.
func (r *Run) CanObtainUnique(u int) bool {
	return u >= 0 && u < len(r.ownedUniques) && !r.ownedUniques[u]
}

// MarkUniqueOwned records unique item u as owned.
func (r *Run) MarkUniqueOwned(u int) {
	if u >= 0 && u < len(r.ownedUniques) {
		r.ownedUniques[u] = true
	}
}

// SlotConsumed reports whether (ante, slot) has already been claimed by an
// earlier clause in this replay.
func (r *Run) SlotConsumed(ante, slot int) bool {
	if ante < 1 || ante > MaxAntes || slot < 0 || slot >= SlotsPerAnte {
		return false
	}
	return r.consumed[ante]&(1<<slot) != 0
}

// ConsumeSlot marks (ante, slot) consumed. It returns false if the slot was
// already consumed, so at most one caller ever claims a given slot.
func (r *Run) ConsumeSlot(ante, slot int) bool {
	if ante < 1 || ante > MaxAntes || slot < 0 || slot >= SlotsPerAnte {
		return false
	}
	bit := uint64(1) << slot
	if r.consumed[ante]&bit != 0 {
		return false
	}
	r.consumed[ante] |= bit
	return true
}

// BossCursor returns the last ante the boss stream was advanced for, 0 if
// never advanced.
func (r *Run) BossCursor() int { return r.bossCursor }

// AdvanceBossCursor records that the boss stream was drawn for ante. The
// cursor moves strictly ante-by-ante from 1 upward; a skip or repeat means
// the caller desynchronized the boss stream, which is a defect, so it panics.
func (r *Run) AdvanceBossCursor(ante int) {
	if ante != r.bossCursor+1 {
		panic("state: boss stream advanced out of order")
	}
	r.bossCursor = ante
}
