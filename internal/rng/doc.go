// Package rng reproduces the target generator's pseudo-random stream,
// bit-for-bit, from a seed string and a named context key.
//
// The engine is split into two stages:
//
//   - Stage 1 folds the seed's characters into a partial hash. The partial
//     depends only on the seed and the *length* of the key (the seed is the
//     suffix of key+seed, so its character positions shift with the key
//     length). Partials are cached per key length.
//   - Stage 2 folds the key's characters over a Stage-1 partial, producing
//     the initial state of that key's stream.
//
// Streams are single-owner cursors: there is no seek, rewind, or clone.
// Advancing a stream out of the generator's real draw order desynchronizes
// every subsequent value, so ownership of each cursor lives in exactly one
// place (see internal/game).
package rng
