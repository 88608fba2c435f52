package rng

import "math"

// Constants of the target generator's hash recurrence and stream advance.
// These are load-bearing: changing any digit breaks bit-for-bit replay.
const (
	hashMul = 1.1239285023
	advMul  = 1.72431234
	advInc  = 2.134453429141
)

// Fract returns the fractional part of x in [0, 1).
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Round13 rounds x to 13 decimal digits, matching the precision the target
// generator applies after every stream advance.
func Round13(x float64) float64 {
	return math.Floor(x*1e13+0.5) / 1e13
}

// hashStep applies one iteration of the hash recurrence for character c at
// 1-based string position pos.
func hashStep(num float64, c byte, pos int) float64 {
	return Fract(hashMul/num*float64(c)*math.Pi + math.Pi*float64(pos))
}

// Hash computes the full pseudo-hash of s, iterating from the last character
// to the first.
func Hash(s string) float64 {
	num := 1.0
	for i := len(s) - 1; i >= 0; i-- {
		num = hashStep(num, s[i], i+1)
	}
	return num
}

// PartialHash computes the Stage-1 partial: the fold of seed's characters as
// they would appear at the tail of a key of length keyLen. The result equals
// the intermediate value Hash(key+seed) reaches after consuming the seed's
// characters, for any key of that length.
func PartialHash(seed string, keyLen int) float64 {
	num := 1.0
	for i := len(seed) - 1; i >= 0; i-- {
		num = hashStep(num, seed[i], keyLen+i+1)
	}
	return num
}

// HashFromPartial completes Stage 2: it folds key's characters over a
// Stage-1 partial. HashFromPartial(key, PartialHash(seed, len(key))) is
// identical to Hash(key+seed).
func HashFromPartial(key string, partial float64) float64 {
	num := partial
	for i := len(key) - 1; i >= 0; i-- {
		num = hashStep(num, key[i], i+1)
	}
	return num
}
