package bfv

import "errors"

// ErrNotImplemented is returned by Relinearize when the supplied
// RelinearizationKey carries no usable key-switching material (Base < 2 or
// Digits == 0).
var ErrNotImplemented = errors.New("bfv: relinearization key has no usable key-switching material")

// ErrInvalidParameter is returned by NewMultiplier when (N, q, t) cannot form
// a valid BFV instance (1 < t < q, and (N, q) must themselves form a valid
// NTT engine).
var ErrInvalidParameter = errors.New("bfv: invalid parameter")

// ErrShapeMismatch is returned by MultiplyCiphertexts and Relinearize when a
// supplied polynomial's length is not exactly the multiplier's N, mirroring
// ntt.ErrShapeMismatch rather than reusing the construction-time
// ErrInvalidParameter for a different failure mode.
var ErrShapeMismatch = errors.New("bfv: polynomial length does not match multiplier degree N")
