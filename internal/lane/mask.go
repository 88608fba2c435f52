package lane

import "math/bits"

// Width is the number of parallel lanes in a vector batch: 8 float64 values,
// the lane count of one 512-bit register.
const Width = 8

// Vec holds one value per lane.
type Vec [Width]float64

// Splat returns a Vec with x in every lane.
func Splat(x float64) Vec {
	var v Vec
	for i := range v {
		v[i] = x
	}
	return v
}

// Mask is a set of lanes, one bit per lane. Bit i corresponds to lane i.
type Mask uint8

// FullMask has every lane set.
const FullMask Mask = 1<<Width - 1

// Bit returns a Mask with only lane i set.
func Bit(i int) Mask { return 1 << i }

// Test reports whether lane i is set.
func (m Mask) Test(i int) bool { return m&(1<<i) != 0 }

// Count returns the number of set lanes.
func (m Mask) Count() int { return bits.OnesCount8(uint8(m)) }

// None reports whether no lane is set.
func (m Mask) None() bool { return m == 0 }

// Not returns the complement restricted to valid lanes.
func (m Mask) Not() Mask { return ^m & FullMask }

// Lanes yields the indices of set lanes in ascending order.
func (m Mask) Lanes(yield func(i int) bool) {
	for m != 0 {
		i := bits.TrailingZeros8(uint8(m))
		if !yield(i) {
			return
		}
		m &= m - 1
	}
}
