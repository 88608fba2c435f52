// Package game is the search context layer: it exposes "get the next
// content item of category X" operations backed by either a wide-lane vector
// of seeds or a single seed, hiding which mode is active behind the Context
// interface.
//
// Every piece of category-specific draw-order knowledge lives here and only
// here. Filters never touch streams directly, so no filter category can
// perturb the draw order another category depends on. The per-slot shop loop
// and the pack-content scan draw every position unconditionally; whether a
// filter cares about a position never changes what is drawn.
package game
