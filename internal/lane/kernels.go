package lane

import "math"

// Constants mirror internal/rng. They are duplicated rather than exported
// from rng so that neither package depends on the other's internals; the
// equivalence tests pin them together.
const (
	hashMul = 1.1239285023
	advMul  = 1.72431234
	advInc  = 2.134453429141
)

var (
	fractImpl    = fractGeneric
	round13Impl  = round13Generic
	hashStepImpl = hashStepGeneric
	advanceImpl  = advanceGeneric
	emitImpl     = emitGeneric
)

// Fract replaces each lane of v with its fractional part in [0, 1).
func Fract(v *Vec) { fractImpl(v) }

func fractGeneric(v *Vec) {
	for i := range v {
		v[i] -= math.Floor(v[i])
	}
}

// Round13 rounds each lane to 13 decimal digits.
func Round13(v *Vec) { round13Impl(v) }

func round13Generic(v *Vec) {
	for i := range v {
		v[i] = math.Floor(v[i]*1e13+0.5) / 1e13
	}
}

// HashStep applies one hash-recurrence iteration to every lane. ch carries
// the per-lane character code point; pos is the 1-based string position,
// shared by all lanes.
func HashStep(num *Vec, ch Vec, pos int) { hashStepImpl(num, ch, pos) }

func hashStepGeneric(num *Vec, ch Vec, pos int) {
	p := math.Pi * float64(pos)
	for i := range num {
		x := hashMul/num[i]*ch[i]*math.Pi + p
		num[i] = x - math.Floor(x)
	}
}

// HashStepUniform applies one hash-recurrence iteration with the same
// character in every lane (used for the shared key characters of Stage 2).
// The operation order matches hashStepGeneric exactly; reassociating the
// multiplications changes float64 rounding and breaks lane/scalar identity.
func HashStepUniform(num *Vec, c byte, pos int) {
	p := math.Pi * float64(pos)
	f := float64(c)
	for i := range num {
		x := hashMul/num[i]*f*math.Pi + p
		num[i] = x - math.Floor(x)
	}
}

// Advance moves every lane's stream state one position forward.
func Advance(state *Vec) { advanceImpl(state) }

func advanceGeneric(state *Vec) {
	for i := range state {
		x := state[i]*advMul + advInc
		x -= math.Floor(x)
		state[i] = math.Floor(x*1e13+0.5) / 1e13
	}
}

// Emit computes the per-lane emitted value from the advanced state and the
// per-lane hashed seed, writing into out.
func Emit(state, hashed *Vec, out *Vec) { emitImpl(state, hashed, out) }

func emitGeneric(state, hashed *Vec, out *Vec) {
	for i := range out {
		out[i] = math.Floor((state[i]+hashed[i])/2*1e13+0.5) / 1e13
	}
}

// Index maps each lane's value in [0, 1) to an integer index in [0, n),
// writing into out.
func Index(v *Vec, n int, out *[Width]int) {
	f := float64(n)
	for i := range v {
		idx := int(v[i] * f)
		if idx >= n {
			idx = n - 1
		}
		out[i] = idx
	}
}

// EqIndex returns the mask of lanes whose index equals want.
func EqIndex(idx *[Width]int, want int) Mask {
	var m Mask
	for i := range idx {
		if idx[i] == want {
			m |= 1 << i
		}
	}
	return m
}
