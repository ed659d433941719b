// Package bfv implements the BFV ciphertext-multiplication step: given two
// degree-1 ciphertexts over R_q, it produces the degree-2 product
// (d0, d1, d2) via a schoolbook negacyclic polynomial product whose
// per-coefficient scale-and-round uses the extended-precision helpers in
// internal/xint, and it can fold that degree-2 product back to degree 1
// (Relinearize) given an externally-supplied evaluation key.
//
// Key generation, encryption, decryption, noise tracking, modulus switching,
// bootstrapping, RNS decomposition, and serialization are out of scope — the
// Multiplier consumes plain coefficient slices and produces plain coefficient
// slices, nothing more.
package bfv

import (
	"fmt"
	"math/big"

	"github.com/dmmjrgif/fhe-final/ntt"
)

// Multiplier holds the BFV parameters (N, q, t) and an NTT engine used for
// the relinearization gadget product (the schoolbook product in
// MultiplyCiphertexts deliberately does not go through the NTT engine — see
// scale.go).
type Multiplier struct {
	n uint64
	q uint64
	t uint64

	// delta is Δ = floor(q/t), the plaintext-to-ciphertext scaling factor.
	// Initialized at construction so an encoder collaborator can compute
	// Δ·m without recomputing q/t itself.
	delta uint64

	engine *ntt.Engine
}

// NewMultiplier constructs a BFV multiplier for plaintext modulus t over the
// ring Z_q[X]/(X^N+1). Requires 1 < t < q and (N, q) to form a valid NTT
// engine.
func NewMultiplier(N int, q, t uint64) (*Multiplier, error) {
	if !(t > 1 && t < q) {
		return nil, fmt.Errorf("%w: plaintext modulus t=%d must satisfy 1 < t < q=%d", ErrInvalidParameter, t, q)
	}
	if err := checkSizeBounds(N, q, t); err != nil {
		return nil, err
	}

	engine, err := ntt.New(N, q)
	if err != nil {
		return nil, fmt.Errorf("%w: building NTT engine: %w", ErrInvalidParameter, err)
	}

	return &Multiplier{
		n:      uint64(N),
		q:      q,
		t:      t,
		delta:  q / t,
		engine: engine,
	}, nil
}

// N returns the ring degree.
func (m *Multiplier) N() int { return int(m.n) }

// Q returns the ciphertext modulus.
func (m *Multiplier) Q() uint64 { return m.q }

// T returns the plaintext modulus.
func (m *Multiplier) T() uint64 { return m.t }

// Delta returns Δ = floor(q/t).
func (m *Multiplier) Delta() uint64 { return m.delta }

// Engine returns the NTT engine backing this multiplier, shared with
// Relinearize's gadget product.
func (m *Multiplier) Engine() *ntt.Engine { return m.engine }

func (m *Multiplier) checkShape(a []uint64) error {
	if uint64(len(a)) != m.n {
		return fmt.Errorf("%w: got length %d, want %d", ErrShapeMismatch, len(a), m.n)
	}
	return nil
}

// MultiplyCiphertexts computes the degree-2 product of two degree-1
// ciphertexts:
//
//	d0 = mulScale(c1.C0, c2.C0)
//	d1 = mulScale(c1.C0, c2.C1) + mulScale(c1.C1, c2.C0)
//	d2 = mulScale(c1.C1, c2.C1)
func (m *Multiplier) MultiplyCiphertexts(c1, c2 Ciphertext) (Product, error) {
	for _, p := range []([]uint64){c1.C0, c1.C1, c2.C0, c2.C1} {
		if err := m.checkShape(p); err != nil {
			return Product{}, err
		}
	}

	d0 := m.mulScale(c1.C0, c2.C0)

	d1a := m.mulScale(c1.C0, c2.C1)
	d1b := m.mulScale(c1.C1, c2.C0)
	d1 := make([]uint64, m.n)
	for i := range d1 {
		d1[i] = addMod(d1a[i], d1b[i], m.q)
	}

	d2 := m.mulScale(c1.C1, c2.C1)

	return Product{D0: d0, D1: d1, D2: d2}, nil
}

func addMod(a, b, q uint64) uint64 {
	r := a + b
	if r >= q {
		r -= q
	}
	return r
}

// checkSizeBounds asserts the accumulator-width invariants this module
// relies on: the schoolbook accumulator N*(q-1)^2 must fit in 128 bits, and
// the scaled product (q-1)^2*t*N must fit in 192 bits. Both hold for any
// q < 2^63 with reasonable N, but are asserted explicitly at construction
// rather than relied on silently.
func checkSizeBounds(N int, q, t uint64) error {
	qMinus1 := new(big.Int).SetUint64(q - 1)
	qMinus1Sq := new(big.Int).Mul(qMinus1, qMinus1)
	bigN := big.NewInt(int64(N))

	accumulatorBound := new(big.Int).Mul(qMinus1Sq, bigN)
	limit128 := new(big.Int).Lsh(big.NewInt(1), 128)
	if accumulatorBound.Cmp(limit128) >= 0 {
		return fmt.Errorf("%w: N*(q-1)^2 does not fit in 128 bits for N=%d, q=%d", ErrInvalidParameter, N, q)
	}

	scaledBound := new(big.Int).Mul(accumulatorBound, new(big.Int).SetUint64(t))
	limit192 := new(big.Int).Lsh(big.NewInt(1), 192)
	if scaledBound.Cmp(limit192) >= 0 {
		return fmt.Errorf("%w: (q-1)^2*t*N does not fit in 192 bits for N=%d, q=%d, t=%d", ErrInvalidParameter, N, q, t)
	}

	return nil
}
