// Package testutil provides testing utilities for seedforge.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating deterministic random seeds and for
// inspecting replayed game content without the search machinery.
//
// # Random Seed Generation
//
//	rng := testutil.NewRNG(42)
//	seed := rng.Seed(8)       // one random 8-char seed
//	seeds := rng.Seeds(8, 8)  // a full vector group
package testutil
