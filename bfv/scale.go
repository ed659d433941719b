package bfv

import "github.com/dmmjrgif/fhe-final/internal/xint"

// mulScale is the engineering centerpiece of BFV ciphertext multiplication: a
// schoolbook negacyclic polynomial product whose accumulator widens to 128
// bits, followed by a per-coefficient scale-by-t-and-round that needs 192-bit
// intermediates to avoid precision loss.
//
// Naively computing (t*a*b) mod q and then dividing throws away the rounding
// BFV's decryption correctness depends on: the scaling has to happen over
// the true integers — accumulate exactly (128 bits), multiply exactly by t
// (192 bits), divide exactly by q with a q/2 rounding addend, then reduce
// modulo q exactly once, at the end.
func (m *Multiplier) mulScale(a, b []uint64) []uint64 {
	n := int(m.n)
	q := m.q
	t := m.t

	acc := make([]xint.Uint128, 2*n)
	for i := 0; i < n; i++ {
		ai := a[i]
		for j := 0; j < n; j++ {
			prod := xint.Mul64x64(ai, b[j])
			acc[i+j] = xint.Add128(acc[i+j], prod)
		}
	}

	res := make([]uint64, n)
	halfQ := q / 2

	for i := 0; i < n; i++ {
		low := acc[i]
		high := acc[n+i]

		var abs xint.Uint128
		negative := false
		if greaterOrEqual128(low, high) {
			abs = xint.Sub128(low, high)
		} else {
			abs = xint.Sub128(high, low)
			negative = true
		}

		num := xint.Mul128x64(abs, t)
		num = xint.Add192Scalar(num, halfQ)

		scaled := xint.Div192By64ModQ(num, q)

		if negative && scaled != 0 {
			scaled = q - scaled
		}
		res[i] = scaled
	}

	return res
}

// greaterOrEqual128 reports whether a >= b for two 128-bit values.
func greaterOrEqual128(a, b xint.Uint128) bool {
	if a.Hi != b.Hi {
		return a.Hi > b.Hi
	}
	return a.Lo >= b.Lo
}
