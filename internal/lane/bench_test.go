package lane

import "testing"

var benchSeeds = []string{
	"AAAAAAAA", "BBBBBBBB", "CCCCCCCC", "DDDDDDDD",
	"EEEEEEEE", "FFFFFFFF", "GGGGGGGG", "HHHHHHHH",
}

func BenchmarkStreamNext(b *testing.B) {
	src := NewSource(benchSeeds)
	st := src.Stream("Voucher1")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.Next()
	}
}

func BenchmarkStreamNextIndex(b *testing.B) {
	src := NewSource(benchSeeds)
	st := src.Stream("Voucher1")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.NextIndex(32)
	}
}

func BenchmarkSourceStream(b *testing.B) {
	src := NewSource(benchSeeds)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = src.Stream("Voucher1")
	}
}

func BenchmarkAdvance(b *testing.B) {
	state := Splat(0.5)
	for i := 0; i < b.N; i++ {
		Advance(&state)
	}
}
