package bfv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecomposeDigitsReconstructs(t *testing.T) {
	a := []uint64{0, 1234, 7680, 42}
	base := uint64(4)
	digits := 7 // ceil(log2(7681)/log2(4)) = 7 digits comfortably covers q=7681

	decomposed := DecomposeDigits(a, base, digits)
	require.Len(t, decomposed, digits)

	for i := range a {
		var reconstructed uint64
		weight := uint64(1)
		for l := 0; l < digits; l++ {
			reconstructed += decomposed[l][i] * weight
			weight *= base
		}
		require.Equal(t, a[i], reconstructed)
	}
}

func TestRelinearizeRejectsUninitializedKey(t *testing.T) {
	m, err := NewMultiplier(4, 7681, 4)
	require.NoError(t, err)

	zero := make([]uint64, 4)
	_, err = m.Relinearize(Product{D0: zero, D1: zero, D2: zero}, RelinearizationKey{})
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestRelinearizeWithZeroDigitsIgnoresD2(t *testing.T) {
	// A relinearization key whose digit polynomials are all zero contributes
	// nothing: Relinearize(d, rlk) must equal (d0, d1) exactly, regardless of
	// d2 — this checks the gadget-product accumulation itself, without
	// needing real key-generation material.
	m, err := NewMultiplier(4, 7681, 4)
	require.NoError(t, err)

	digits := 4
	base := uint64(8)

	zeroPoly := func() []uint64 { return make([]uint64, 4) }
	rlk := RelinearizationKey{Base: base, Digits: digits}
	for l := 0; l < digits; l++ {
		rlk.B = append(rlk.B, zeroPoly())
		rlk.A = append(rlk.A, zeroPoly())
	}

	d0 := []uint64{1, 2, 3, 4}
	d1 := []uint64{5, 6, 7, 8}
	d2 := []uint64{100, 200, 300, 400}

	ct, err := m.Relinearize(Product{D0: d0, D1: d1, D2: d2}, rlk)
	require.NoError(t, err)
	require.Equal(t, d0, ct.C0)
	require.Equal(t, d1, ct.C1)
}

func TestRelinearizeRejectsWrongDigitCount(t *testing.T) {
	m, err := NewMultiplier(4, 7681, 4)
	require.NoError(t, err)

	rlk := RelinearizationKey{Base: 4, Digits: 3, B: [][]uint64{make([]uint64, 4)}, A: [][]uint64{make([]uint64, 4)}}
	zero := make([]uint64, 4)
	_, err = m.Relinearize(Product{D0: zero, D1: zero, D2: zero}, rlk)
	require.Error(t, err)
}

func TestFingerprintDistinguishesKeys(t *testing.T) {
	rlk1 := RelinearizationKey{Base: 4, Digits: 1, B: [][]uint64{{1, 2, 3, 4}}, A: [][]uint64{{5, 6, 7, 8}}}
	rlk2 := RelinearizationKey{Base: 4, Digits: 1, B: [][]uint64{{1, 2, 3, 5}}, A: [][]uint64{{5, 6, 7, 8}}}

	require.NotEqual(t, rlk1.Fingerprint(), rlk2.Fingerprint())
	require.Equal(t, rlk1.Fingerprint(), rlk1.Fingerprint())
}

func TestNoiseGrowthEstimateIncreasesWithDigits(t *testing.T) {
	m, err := NewMultiplier(4, 7681, 4)
	require.NoError(t, err)

	small := m.NoiseGrowthEstimate(RelinearizationKey{Base: 4, Digits: 2})
	large := m.NoiseGrowthEstimate(RelinearizationKey{Base: 4, Digits: 8})

	require.True(t, large.Cmp(small) > 0)
}
