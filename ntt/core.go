package ntt

import "math/bits"

// bitReverse returns the log_n-bit reversal of x.
func bitReverse(x, logN int) int {
	res := 0
	for i := 0; i < logN; i++ {
		res = (res << 1) | (x & 1)
		x >>= 1
	}
	return res
}

// bitReverseCopy permutes a in place by swapping a[i] with a[bitrev(i)] for
// every i whose bit-reversal is strictly greater than i.
func bitReverseCopy(a []uint64, logN int) {
	n := len(a)
	for i := 0; i < n; i++ {
		if rev := bitReverse(i, logN); i < rev {
			a[i], a[rev] = a[rev], a[i]
		}
	}
}

// nttCore performs the standard (cyclic) in-place iterative Cooley-Tukey
// transform of a using the supplied root table. The orientation — forward or
// inverse — is determined entirely by which table (omegaPowers or
// omegaInvPowers) the caller passes; this function has no notion of
// direction itself.
func (e *Engine) nttCore(a []uint64, roots []uint64) {
	n := len(a)
	logN := bits.Len(uint(n)) - 1

	bitReverseCopy(a, logN)

	q := e.q
	u := e.bred

	for s := 1; s <= logN; s++ {
		m := 1 << s
		m2 := m >> 1
		rootStep := n / m

		for k := 0; k < n; k += m {
			for j := 0; j < m2; j++ {
				w := roots[j*rootStep]
				twiddle := barrettMul(w, a[k+j+m2], q, u)
				upper := a[k+j]

				a[k+j] = modAdd(upper, twiddle, q)
				a[k+j+m2] = modSub(upper, twiddle, q)
			}
		}
	}
}

// Forward performs the in-place negacyclic forward transform of a: the
// negacyclic pre-twist (multiply a[i] by psi^i) followed by the standard NTT
// with the omega root table.
func (e *Engine) Forward(a []uint64) error {
	if err := e.checkShape(a); err != nil {
		return err
	}
	for i := range a {
		a[i] = barrettMul(a[i], e.psiPowers[i], e.q, e.bred)
	}
	e.nttCore(a, e.omegaPowers)
	return nil
}

// Inverse performs the in-place negacyclic inverse transform of a: the
// standard inverse NTT with the omega-inverse root table, followed by
// scaling by N^-1 and the negacyclic post-twist (multiply a[i] by psi^-i).
func (e *Engine) Inverse(a []uint64) error {
	if err := e.checkShape(a); err != nil {
		return err
	}
	e.nttCore(a, e.omegaInvPowers)
	for i := range a {
		val := barrettMul(a[i], e.nInv, e.q, e.bred)
		a[i] = barrettMul(val, e.psiInvPowers[i], e.q, e.bred)
	}
	return nil
}

// Multiply returns a fresh polynomial equal to a*b in R_q = Z_q[X]/(X^N+1),
// computed by transforming both operands, multiplying pointwise, and
// transforming back.
func (e *Engine) Multiply(a, b []uint64) ([]uint64, error) {
	if err := e.checkShape(a); err != nil {
		return nil, err
	}
	if err := e.checkShape(b); err != nil {
		return nil, err
	}

	aNTT := append([]uint64(nil), a...)
	bNTT := append([]uint64(nil), b...)

	if err := e.Forward(aNTT); err != nil {
		return nil, err
	}
	if err := e.Forward(bNTT); err != nil {
		return nil, err
	}

	for i := range aNTT {
		aNTT[i] = barrettMul(aNTT[i], bNTT[i], e.q, e.bred)
	}

	if err := e.Inverse(aNTT); err != nil {
		return nil, err
	}
	return aNTT, nil
}

// Add returns a+b, coefficient-wise modulo q.
func (e *Engine) Add(a, b []uint64) ([]uint64, error) {
	if err := e.checkShape(a); err != nil {
		return nil, err
	}
	if err := e.checkShape(b); err != nil {
		return nil, err
	}
	res := make([]uint64, e.n)
	for i := range res {
		res[i] = modAdd(a[i], b[i], e.q)
	}
	return res, nil
}

// Subtract returns a-b, coefficient-wise modulo q.
func (e *Engine) Subtract(a, b []uint64) ([]uint64, error) {
	if err := e.checkShape(a); err != nil {
		return nil, err
	}
	if err := e.checkShape(b); err != nil {
		return nil, err
	}
	res := make([]uint64, e.n)
	for i := range res {
		res[i] = modSub(a[i], b[i], e.q)
	}
	return res, nil
}

// ScalarMul returns a*scalar, coefficient-wise modulo q.
func (e *Engine) ScalarMul(a []uint64, scalar uint64) ([]uint64, error) {
	if err := e.checkShape(a); err != nil {
		return nil, err
	}
	scalar %= e.q
	res := make([]uint64, e.n)
	for i := range res {
		res[i] = barrettMul(a[i], scalar, e.q, e.bred)
	}
	return res, nil
}
