package ntt

import (
	"math/big"
	"math/bits"
)

// barrettParams precomputes the Barrett-reduction constant u = floor(2^128/q),
// split into its high and low 64-bit halves, so that a 64x64 product can be
// reduced modulo q without a hardware 128-bit divide on every multiplication.
func barrettParams(q uint64) [2]uint64 {
	r := new(big.Int).Lsh(big.NewInt(1), 128)
	r.Div(r, new(big.Int).SetUint64(q))

	hi := new(big.Int).Rsh(r, 64).Uint64()
	lo := r.Uint64()
	return [2]uint64{hi, lo}
}

// barrettReduce reduces a value known to be < 2^64 modulo q using the
// precomputed Barrett constant u. Grounded on ring.BRedAdd.
func barrettReduce(x, q uint64, u [2]uint64) uint64 {
	s0, _ := bits.Mul64(x, u[0])
	r := x - s0*q
	if r >= q {
		r -= q
	}
	return r
}

// barrettMul computes x*y mod q via a Barrett reduction of the full 128-bit
// product. Grounded on ring.BRed.
func barrettMul(x, y, q uint64, u [2]uint64) uint64 {
	ahi, alo := bits.Mul64(x, y)

	lhi, _ := bits.Mul64(alo, u[1])

	mhi, mlo := bits.Mul64(alo, u[0])
	s0, carry := bits.Add64(mlo, lhi, 0)
	s1 := mhi + carry

	mhi, mlo = bits.Mul64(ahi, u[1])
	_, carry = bits.Add64(mlo, s0, 0)
	lhi = mhi + carry

	s0 = ahi*u[0] + s1 + lhi

	r := alo - s0*q
	if r >= q {
		r -= q
	}
	return r
}

// modAdd returns (a+b) mod q for a, b already in [0, q).
func modAdd(a, b, q uint64) uint64 {
	r := a + b
	if r >= q {
		r -= q
	}
	return r
}

// modSub returns (a-b) mod q for a, b already in [0, q).
func modSub(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a - b + q
}
