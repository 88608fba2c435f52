// Package lane provides the wide-lane numeric kernels for vectorized seed
// evaluation. A batch evaluates Width candidate seeds simultaneously; every
// kernel applies the identical scalar recurrence (see internal/rng) across
// all lanes.
//
// Bit-identical agreement between these kernels and the scalar path is a
// correctness property, not an optimization detail: a lane that diverges
// from its scalar replay silently corrupts results.
//
// Kernels are dispatched through package-level impl variables so that a
// platform-specific build can swap in accelerated versions without touching
// callers.
package lane
