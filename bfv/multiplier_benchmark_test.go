package bfv

import (
	"fmt"
	"testing"
)

func BenchmarkMultiplyCiphertexts(b *testing.B) {
	benchMultiplyCiphertexts(8, 7681, 4, b)
	benchMultiplyCiphertexts(16, 12289, 257, b)
}

func benchMultiplyCiphertexts(N int, q, t uint64, b *testing.B) {
	b.Run(fmt.Sprintf("N=%d/q=%d/t=%d", N, q, t), func(b *testing.B) {
		m, err := NewMultiplier(N, q, t)
		if err != nil {
			b.Fatal(err)
		}

		c0 := make([]uint64, N)
		c1 := make([]uint64, N)
		for i := range c0 {
			c0[i] = uint64(i+1) % q
			c1[i] = uint64(N-i) % q
		}
		ct := Ciphertext{C0: c0, C1: c1}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := m.MultiplyCiphertexts(ct, ct); err != nil {
				b.Fatal(err)
			}
		}
	})
}
