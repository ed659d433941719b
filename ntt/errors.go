package ntt

import "errors"

// ErrInvalidParameter is returned by New when (N, q) cannot support a
// negacyclic NTT: N is not a power of two, q is not prime, or q is not
// congruent to 1 modulo 2N.
var ErrInvalidParameter = errors.New("ntt: invalid parameter")

// ErrShapeMismatch is returned by any operation given a polynomial whose
// length is not exactly the engine's N.
var ErrShapeMismatch = errors.New("ntt: polynomial length does not match engine degree N")
