package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	tests := []struct {
		seed string
		want bool
	}{
		{seed: "ALEEB", want: true},
		{seed: "7LB2WVPK", want: true},
		{seed: "1", want: true},
		{seed: "ZZZZZZZZ", want: true},
		{seed: "", want: false},
		{seed: "ZZZZZZZZZ", want: false}, // 9 chars
		{seed: "ALE0B", want: false},     // 0 not in alphabet
		{seed: "aleeb", want: false},     // lowercase
		{seed: "ALE-B", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.seed))
		})
	}
}

func TestCharIndex(t *testing.T) {
	assert.Equal(t, 0, CharIndex('1'))
	assert.Equal(t, 8, CharIndex('9'))
	assert.Equal(t, 9, CharIndex('A'))
	assert.Equal(t, 34, CharIndex('Z'))
	assert.Equal(t, -1, CharIndex('0'))
	assert.Equal(t, -1, CharIndex('a'))
}

func TestPow(t *testing.T) {
	assert.Equal(t, int64(1), Pow(0))
	assert.Equal(t, int64(35), Pow(1))
	assert.Equal(t, int64(42875), Pow(3))
	assert.Equal(t, int64(52521875), Pow(5))
	// The full 8-position space.
	assert.Equal(t, int64(2251875390625), Pow(8))
}

func TestEncodeDecodePrefix(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		for _, idx := range []int64{0, 1, 34, 35, 1224, 42874, 52521874} {
			prefix, err := EncodePrefix(idx, 5)
			require.NoError(t, err)
			require.Len(t, prefix, 5)

			back, err := DecodePrefix(prefix)
			require.NoError(t, err)
			assert.Equal(t, idx, back, "prefix %s", prefix)
		}
	})

	t.Run("known encodings", func(t *testing.T) {
		first, err := EncodePrefix(0, 3)
		require.NoError(t, err)
		assert.Equal(t, "111", first)

		last, err := EncodePrefix(Pow(3)-1, 3)
		require.NoError(t, err)
		assert.Equal(t, "ZZZ", last)
	})

	t.Run("ordering", func(t *testing.T) {
		prev, err := EncodePrefix(0, 2)
		require.NoError(t, err)
		for idx := int64(1); idx < Pow(2); idx++ {
			cur, err := EncodePrefix(idx, 2)
			require.NoError(t, err)
			require.Less(t, prev, cur)
			prev = cur
		}
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := EncodePrefix(-1, 3)
		assert.Error(t, err)
		_, err = EncodePrefix(Pow(3), 3)
		assert.Error(t, err)
	})

	t.Run("bad character", func(t *testing.T) {
		_, err := DecodePrefix("A0A")
		assert.Error(t, err)
	})
}
