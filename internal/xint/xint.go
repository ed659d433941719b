// Package xint provides the extended-precision integer arithmetic that the
// BFV scale-and-round step needs: 128-bit accumulation of 64x64 products and
// 192-bit scaling of the result by the plaintext modulus before a single
// reduction modulo a 64-bit prime.
//
// Every function here is total on its documented domain: there is no error
// return, no panic on well-formed input, and no hidden allocation. Callers in
// package bfv must not open-code carries themselves; this package is the only
// place that does.
package xint

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Uint128 is an unsigned 128-bit integer, low limb first.
type Uint128 struct {
	Lo, Hi uint64
}

// Uint192 is an unsigned 192-bit integer, low limb first.
type Uint192 struct {
	Lo, Mid, Hi uint64
}

// Add128 returns a+b as a 128-bit sum with carry into Hi.
func Add128(a, b Uint128) Uint128 {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, _ := bits.Add64(a.Hi, b.Hi, carry)
	return Uint128{Lo: lo, Hi: hi}
}

// Sub128 returns a-b as a 128-bit difference. The caller guarantees a >= b.
func Sub128(a, b Uint128) Uint128 {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)
	return Uint128{Lo: lo, Hi: hi}
}

// Mul64x64 returns the full 128-bit product of two 64-bit operands.
func Mul64x64(a, b uint64) Uint128 {
	hi, lo := bits.Mul64(a, b)
	return Uint128{Lo: lo, Hi: hi}
}

// Mul128x64 returns the full 192-bit product a*b for a 128-bit a and a
// 64-bit b, built from two 64x64 products with a carry-aware mid addition.
func Mul128x64(a Uint128, b uint64) Uint192 {
	pLo := Mul64x64(a.Lo, b)
	pHi := Mul64x64(a.Hi, b)

	mid, carry := bits.Add64(pLo.Hi, pHi.Lo, 0)
	hi, _ := bits.Add64(pHi.Hi, 0, carry)

	return Uint192{Lo: pLo.Lo, Mid: mid, Hi: hi}
}

// Add192Scalar adds a 64-bit scalar into a 192-bit value, propagating the
// carry through Mid and Hi.
func Add192Scalar(n Uint192, s uint64) Uint192 {
	lo, carry := bits.Add64(n.Lo, s, 0)
	mid, carry := bits.Add64(n.Mid, 0, carry)
	hi, _ := bits.Add64(n.Hi, 0, carry)
	return Uint192{Lo: lo, Mid: mid, Hi: hi}
}

// Div192By64ModQ computes floor(n/q) mod q for a 192-bit n and a prime q that
// fits in 63 bits, without ever materializing the full-width quotient as a
// single machine value.
//
// The quotient of a 192-bit value by a 64-bit divisor can itself span up to
// 128 bits. This is computed by walking the divide down the three limbs of n
// (most significant first), carrying the remainder of each step into the
// next as the new dividend's high limb — the standard long-division
// reduction — which yields a three-limb quotient {quotHi2, quotHi, quotLo}
// (quotHi2 is the quotient of the top limb alone, so it is at most 64 bits
// itself, but it still carries a 2^128 place value) and a final remainder
// that scale-and-round discards (the q/2 addend already performed the
// rounding). The three-limb quotient is then folded modulo q by computing
// (quotHi2*(2^128 mod q) + quotHi*(2^64 mod q) + quotLo) mod q, each term
// reduced with a 128-over-64 divide.
//
// No quotient limb may be silently dropped: discarding quotHi2 produces a
// wrong, small result whenever the true quotient exceeds 128 bits, which
// happens whenever n.Hi >= q.
func Div192By64ModQ(n Uint192, q uint64) uint64 {
	quotHi2, remHi := bits.Div64(0, n.Hi, q)
	quotHi, remMid := bits.Div64(remHi, n.Mid, q)
	quotLo, _ := bits.Div64(remMid, n.Lo, q)

	_, twoPow64ModQ := bits.Div64(1, 0, q)

	pHi, pLo := bits.Mul64(twoPow64ModQ, twoPow64ModQ)
	_, twoPow128ModQ := bits.Div64(pHi, pLo, q)

	hiA, loA := bits.Mul64(quotHi2, twoPow128ModQ)
	_, termA := bits.Div64(hiA, loA, q)

	hiB, loB := bits.Mul64(quotHi, twoPow64ModQ)
	_, termB := bits.Div64(hiB, loB, q)

	termC := quotLo % q

	result := addMod64(termA, termB, q)
	result = addMod64(result, termC, q)
	return result
}

func addMod64(a, b, q uint64) uint64 {
	r := a + b
	if r >= q {
		r -= q
	}
	return r
}

// maxUint reports the maximum value representable by T, used by assertions
// that check size-bound invariants rather than by any arithmetic helper
// above.
func maxUint[T constraints.Unsigned]() T {
	var zero T
	return zero - 1
}

// FitsUint63 reports whether v fits in 63 bits, the precondition every
// modulus q in this module must satisfy (1 < q < 2^63).
func FitsUint63(v uint64) bool {
	return v < 1<<63 && v <= maxUint[uint64]()
}
