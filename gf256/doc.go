// Package gf256 implements arithmetic over the finite field GF(2^8),
// the byte-wide field underlying the Reed-Solomon erasure coding in
// [github.com/gordian-engine/gecc/gerasure/gereedsolomon].
//
// Addition and subtraction in the field are both XOR.
// Multiplication, division, and inversion are provided as O(1) table lookups,
// with the tables derived once at package init
// from the direct polynomial arithmetic they must agree with.
//
// Beyond scalar operations, the package provides the buffer-at-a-time
// kernels used in the hot encode and reconstruct loops:
// a constant-coefficient multiply ([VectMul]),
// a multiply-accumulate ([VectMulXor]),
// and a plain XOR accumulate ([SliceXor]).
// The kernel implementations are chosen once per process
// based on a CPU capability probe; see dispatch.go.
package gf256
