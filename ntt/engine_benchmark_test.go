package ntt

import (
	"fmt"
	"testing"
)

func BenchmarkForward(b *testing.B) {
	benchForward(8, 17, b)
	benchForward(16, 12289, b)
}

func benchForward(N int, q uint64, b *testing.B) {
	b.Run(fmt.Sprintf("N=%d/q=%d", N, q), func(b *testing.B) {
		e, err := New(N, q)
		if err != nil {
			b.Fatal(err)
		}

		p := make([]uint64, N)
		for i := range p {
			p[i] = uint64(i) % q
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if err := e.Forward(p); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkMultiply(b *testing.B) {
	e, err := New(16, 12289)
	if err != nil {
		b.Fatal(err)
	}

	a := make([]uint64, 16)
	bPoly := make([]uint64, 16)
	for i := range a {
		a[i] = uint64(i + 1)
		bPoly[i] = uint64(16 - i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Multiply(a, bPoly); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMultiplyLatencyStats(b *testing.B) {
	e, err := New(16, 12289)
	if err != nil {
		b.Fatal(err)
	}

	a := make([]uint64, 16)
	bPoly := make([]uint64, 16)
	for i := range a {
		a[i] = uint64(i + 1)
		bPoly[i] = uint64(16 - i)
	}

	for i := 0; i < b.N; i++ {
		if _, err := e.MultiplyLatencyStats(a, bPoly, 8); err != nil {
			b.Fatal(err)
		}
	}
}
