package bfv

// Ciphertext is a degree-1 BFV ciphertext: a pair of length-N polynomials
// (C0, C1) over R_q.
type Ciphertext struct {
	C0, C1 []uint64
}

// Product is the degree-2 result of multiplying two Ciphertexts, before
// relinearization collapses it back to a Ciphertext.
type Product struct {
	D0, D1, D2 []uint64
}
