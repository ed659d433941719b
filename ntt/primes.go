package ntt

import (
	"math/big"
	"math/bits"
)

// IsPrime reports whether q is prime, using the Baillie-PSW test, which is
// exact (no false positives) for all values below 2^64.
func IsPrime(q uint64) bool {
	return new(big.Int).SetUint64(q).ProbablyPrime(0)
}

// mulMod64 returns a*b mod q via the full 128-bit product, used only by the
// construction-time routines (primitive-root search, omega and the power
// tables) where clarity matters more than avoiding a hardware divide —
// the hot per-coefficient path in ntt_core uses the precomputed Barrett
// constant instead.
func mulMod64(a, b, q uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi%q, lo, q)
	return rem
}

// modExp computes base^exp mod q by square-and-multiply.
func modExp(base, exp, q uint64) uint64 {
	result := uint64(1)
	base %= q
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod64(result, base, q)
		}
		base = mulMod64(base, base, q)
		exp >>= 1
	}
	return result
}

// modInv returns the multiplicative inverse of a modulo the prime q, via the
// iterative extended Euclidean algorithm. Recursion depth for the classic
// formulation is bounded by O(log q) and would be safe either way, but
// iteration needs no stack frames.
func modInv(a, q uint64) uint64 {
	// All intermediate values are tracked as signed 64-bit: q < 2^63 keeps
	// every coefficient well within range.
	oldR, r := int64(a%q), int64(q)
	oldS, s := int64(1), int64(0)

	for r != 0 {
		quotient := oldR / r
		oldR, r = r, oldR-quotient*r
		oldS, s = s, oldS-quotient*s
	}

	if oldS < 0 {
		oldS += int64(q)
	}
	return uint64(oldS) % q
}

// findPsi performs a brute-force 2N-th primitive root search: for
// g = 2, 3, ..., test whether val = g^((q-1)/2N) has exact order 2N
// (val^2N == 1 and val^N != 1). The first such val is returned as psi.
// Returns 0 if the search exhausts q without finding one, which cannot
// happen for a prime q congruent to 1 mod 2N.
func findPsi(q uint64, twoN uint64) uint64 {
	exp := (q - 1) / twoN
	for g := uint64(2); g < q; g++ {
		val := modExp(g, exp, q)
		if modExp(val, twoN, q) == 1 && modExp(val, twoN/2, q) != 1 {
			return val
		}
	}
	return 0
}
