package rng

import "testing"

func BenchmarkHash(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Hash("7LB2WVPK")
	}
}

func BenchmarkStreamNext(b *testing.B) {
	src := NewSource("7LB2WVPK")
	st := src.Stream("Voucher1")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.Next()
	}
}

func BenchmarkSourceStream(b *testing.B) {
	src := NewSource("7LB2WVPK")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = src.Stream("Voucher1")
	}
}
