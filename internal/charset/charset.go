// Package charset defines the seed alphabet and the lexicographic encoding
// used to enumerate the candidate space.
//
// Seeds are strings over a 35-character alphabet (digits 1-9 and A-Z), at
// most MaxSeedLen characters long. Sequential search enumerates the full
// cartesian product of MaxSeedLen positions; a batch index selects a fixed
// prefix and the remaining positions are expanded inside the batch.
package charset

import "fmt"

// Alphabet is the seed alphabet in lexicographic order.
const Alphabet = "123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// AlphabetSize is len(Alphabet).
const AlphabetSize = 35

// MaxSeedLen is the maximum seed length of the observed configuration.
const MaxSeedLen = 8

var indexOf [256]int8

func init() {
	for i := range indexOf {
		indexOf[i] = -1
	}
	for i := 0; i < AlphabetSize; i++ {
		indexOf[Alphabet[i]] = int8(i)
	}
}

// Valid reports whether s is a well-formed seed: non-empty, at most
// MaxSeedLen characters, all from Alphabet.
func Valid(s string) bool {
	if len(s) == 0 || len(s) > MaxSeedLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if indexOf[s[i]] < 0 {
			return false
		}
	}
	return true
}

// CharIndex returns the alphabet index of c, or -1 if c is not in Alphabet.
func CharIndex(c byte) int { return int(indexOf[c]) }

// Pow returns AlphabetSize**n.
func Pow(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= AlphabetSize
	}
	return p
}

// EncodePrefix writes the base-35 representation of idx as a prefix of
// length n, most significant character first. idx must be in [0, Pow(n)).
func EncodePrefix(idx int64, n int) (string, error) {
	if idx < 0 || idx >= Pow(n) {
		return "", fmt.Errorf("charset: prefix index %d out of range for length %d", idx, n)
	}
	buf := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		buf[i] = Alphabet[idx%AlphabetSize]
		idx /= AlphabetSize
	}
	return string(buf), nil
}

// DecodePrefix is the inverse of EncodePrefix.
func DecodePrefix(prefix string) (int64, error) {
	var idx int64
	for i := 0; i < len(prefix); i++ {
		ci := indexOf[prefix[i]]
		if ci < 0 {
			return 0, fmt.Errorf("charset: character %q not in alphabet", prefix[i])
		}
		idx = idx*AlphabetSize + int64(ci)
	}
	return idx, nil
}
