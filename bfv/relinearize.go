package bfv

import (
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"
	"golang.org/x/crypto/blake2b"
)

// RelinearizationKey is the evaluation-key material Relinearize consumes.
// Key generation is out of scope for this module; a collaborator produces
// this struct by encrypting s^2, decomposed in base Base, under the secret
// key s. Concretely, for digit l in [0, Digits):
//
//	B[l] ≈ -A[l]*s + e[l] + Base^l * s^2   (mod q)
//
// the standard RLWE gadget encryption of s^2 in base Base, grounded on
// hosseinabdinf/HHESoK's mfv_evaluator.go relinearize step and
// Pro7ech/lattigo's rlwe gadget-ciphertext decomposition concept, simplified
// to plain base-w digits of a single modulus since RNS is a Non-goal here.
type RelinearizationKey struct {
	// Base is the digit decomposition base w >= 2.
	Base uint64
	// Digits is the number of decomposition digits, ceil(log_w(q)).
	Digits int
	// B and A each hold Digits length-N polynomials.
	B, A [][]uint64
}

// DecomposeDigits splits each coefficient of a (values in [0, q)) into
// `digits` base-`base` digits, returning `digits` length-N polynomials whose
// weighted sum (Σ_l digit_l[i] * base^l) reconstructs a[i].
func DecomposeDigits(a []uint64, base uint64, digits int) [][]uint64 {
	n := len(a)
	out := make([][]uint64, digits)
	for l := range out {
		out[l] = make([]uint64, n)
	}

	for i, v := range a {
		for l := 0; l < digits; l++ {
			out[l][i] = v % base
			v /= base
		}
	}
	return out
}

// Relinearize folds a degree-2 ciphertext (d0, d1, d2) back to a degree-1
// ciphertext using rlk, via the standard digit-decomposition key-switching
// gadget product:
//
//	c0 = d0 + Σ_l digit_l(d2) * rlk.B[l]
//	c1 = d1 + Σ_l digit_l(d2) * rlk.A[l]
//
// Returns ErrNotImplemented if rlk carries no usable key-switching material
// (Base < 2 or Digits == 0, e.g. a zero-value RelinearizationKey), rather
// than silently dropping d2 and returning (d0, d1) unchanged.
func (m *Multiplier) Relinearize(d Product, rlk RelinearizationKey) (Ciphertext, error) {
	if rlk.Base < 2 || rlk.Digits == 0 {
		return Ciphertext{}, ErrNotImplemented
	}
	if len(rlk.B) != rlk.Digits || len(rlk.A) != rlk.Digits {
		return Ciphertext{}, fmt.Errorf("bfv: relinearization key has %d B-digits and %d A-digits, want %d", len(rlk.B), len(rlk.A), rlk.Digits)
	}
	for _, p := range []([]uint64){d.D0, d.D1, d.D2} {
		if err := m.checkShape(p); err != nil {
			return Ciphertext{}, err
		}
	}

	digits := DecomposeDigits(d.D2, rlk.Base, rlk.Digits)

	c0 := append([]uint64(nil), d.D0...)
	c1 := append([]uint64(nil), d.D1...)

	for l := 0; l < rlk.Digits; l++ {
		if err := m.checkShape(rlk.B[l]); err != nil {
			return Ciphertext{}, fmt.Errorf("bfv: relinearization key digit %d of B: %w", l, err)
		}
		if err := m.checkShape(rlk.A[l]); err != nil {
			return Ciphertext{}, fmt.Errorf("bfv: relinearization key digit %d of A: %w", l, err)
		}

		termB, err := m.engine.Multiply(digits[l], rlk.B[l])
		if err != nil {
			return Ciphertext{}, err
		}
		termA, err := m.engine.Multiply(digits[l], rlk.A[l])
		if err != nil {
			return Ciphertext{}, err
		}

		if c0, err = m.engine.Add(c0, termB); err != nil {
			return Ciphertext{}, err
		}
		if c1, err = m.engine.Add(c1, termA); err != nil {
			return Ciphertext{}, err
		}
	}

	return Ciphertext{C0: c0, C1: c1}, nil
}

// Fingerprint returns a non-cryptographic integrity tag over rlk's encoded
// coefficients, useful only for telling two key objects apart in tests and
// diagnostics.
func (rlk RelinearizationKey) Fingerprint() [32]byte {
	h, _ := blake2b.New256(nil)
	var buf [8]byte
	writeUint64 := func(v uint64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}

	writeUint64(rlk.Base)
	writeUint64(uint64(rlk.Digits))
	for _, digitPolys := range [][][]uint64{rlk.B, rlk.A} {
		for _, poly := range digitPolys {
			for _, c := range poly {
				writeUint64(c)
			}
		}
	}

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// NoiseGrowthEstimate reports a theoretical upper bound on the additional
// noise Relinearize introduces, as a natural logarithm: ln(Base*Digits*N),
// i.e. Digits accumulated N-term products whose digit factors are each below
// Base. Diagnostic-only — it never sits
// on mulScale's hot path — grounded on Pro7ech/lattigo's use of
// ALTree/bigfloat for closed-form noise-growth bounds in he/hefloat.
func (m *Multiplier) NoiseGrowthEstimate(rlk RelinearizationKey) *big.Float {
	prec := uint(128)
	base := new(big.Float).SetPrec(prec).SetUint64(rlk.Base)
	digits := new(big.Float).SetPrec(prec).SetInt64(int64(rlk.Digits))
	n := new(big.Float).SetPrec(prec).SetUint64(m.n)

	bound := new(big.Float).SetPrec(prec).Mul(base, digits)
	bound.Mul(bound, n)

	return bigfloat.Log(bound)
}
