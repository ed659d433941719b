// Package ntt implements the negacyclic Number-Theoretic Transform over the
// ring R_q = Z_q[X]/(X^N+1): forward/inverse transforms and the coefficient
// operations (add, subtract, scalar multiply, transform-based multiply) that
// package bfv builds its ciphertext multiplier on top of.
//
// An Engine is constructed once per (N, q) pair; its twiddle tables are
// immutable for the engine's lifetime and every method is safe to call
// concurrently on the same Engine.
package ntt

import (
	"fmt"

	"github.com/klauspost/cpuid/v2"
)

// Engine holds the precomputed twiddle tables for a fixed (N, q) pair and
// exposes the negacyclic transform and pointwise ring operations.
type Engine struct {
	n uint64
	q uint64

	psi       uint64
	psiInv    uint64
	omega     uint64
	omegaInv  uint64
	nInv      uint64

	omegaPowers    []uint64
	omegaInvPowers []uint64
	psiPowers      []uint64
	psiInvPowers   []uint64

	bred [2]uint64

	// CPUFeatures is informational metadata only: no code path branches on
	// it. This engine stays single-threaded and scalar regardless.
	CPUFeatures string
}

// N returns the ring degree.
func (e *Engine) N() int { return int(e.n) }

// Q returns the modulus.
func (e *Engine) Q() uint64 { return e.q }

// Psi returns the 2N-th primitive root of unity used to build this engine's
// tables.
func (e *Engine) Psi() uint64 { return e.psi }

// New constructs an NTT engine for the ring Z_q[X]/(X^N+1).
//
// N must be a power of two, N >= 2. q must be an odd prime with
// q == 1 (mod 2N), which is the existence condition for a 2N-th primitive
// root of unity in Z_q — without it no psi exists and construction fails
// with ErrInvalidParameter.
func New(N int, q uint64) (*Engine, error) {
	if N < 2 || (N&(N-1)) != 0 {
		return nil, fmt.Errorf("%w: N=%d is not a power of two >= 2", ErrInvalidParameter, N)
	}
	if q <= 1 || q >= 1<<63 {
		return nil, fmt.Errorf("%w: q=%d must satisfy 1 < q < 2^63", ErrInvalidParameter, q)
	}

	twoN := uint64(2 * N)
	if (q-1)%twoN != 0 {
		return nil, fmt.Errorf("%w: q=%d is not congruent to 1 mod 2N=%d", ErrInvalidParameter, q, twoN)
	}
	if !IsPrime(q) {
		return nil, fmt.Errorf("%w: q=%d is not prime", ErrInvalidParameter, q)
	}

	psi := findPsi(q, twoN)
	if psi == 0 {
		// Cannot happen for a prime q == 1 mod 2N; kept as a defensive
		// failure rather than a panic since it is reachable only through
		// an inconsistency in the validation above.
		return nil, fmt.Errorf("%w: no 2N-th primitive root found for q=%d, N=%d", ErrInvalidParameter, q, N)
	}

	e := &Engine{
		n:           uint64(N),
		q:           q,
		psi:         psi,
		psiInv:      modInv(psi, q),
		bred:        barrettParams(q),
		CPUFeatures: cpuid.CPU.BrandName,
	}
	e.omega = mulMod64(psi, psi, q)
	e.omegaInv = modInv(e.omega, q)
	e.nInv = modInv(uint64(N), q)

	e.psiPowers = powerTable(psi, e.q, N)
	e.psiInvPowers = powerTable(e.psiInv, e.q, N)
	e.omegaPowers = powerTable(e.omega, e.q, N)
	e.omegaInvPowers = powerTable(e.omegaInv, e.q, N)

	return e, nil
}

// powerTable returns [1, root, root^2, ..., root^(n-1)] mod q.
func powerTable(root, q uint64, n int) []uint64 {
	table := make([]uint64, n)
	cur := uint64(1)
	for i := 0; i < n; i++ {
		table[i] = cur
		cur = mulMod64(cur, root, q)
	}
	return table
}

func (e *Engine) checkShape(a []uint64) error {
	if uint64(len(a)) != e.n {
		return fmt.Errorf("%w: got length %d, want %d", ErrShapeMismatch, len(a), e.n)
	}
	return nil
}
