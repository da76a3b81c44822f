// Package gereedsolomon implements systematic Reed-Solomon erasure coding
// over GF(2^8).
//
// A [Code] is configured with k data shards and p parity shards.
// Its generator matrix is (k+p) x k with the identity on top,
// so encoded data shards are the original bytes (a systematic code),
// and any k of the k+p shards are sufficient to rebuild the rest
// as long as the generator has the MDS property,
// which the default Cauchy construction guarantees for all k+p <= 256.
//
// Encoding expands the parity rows of the generator into per-coefficient
// lookup tables once ([InitTables]) and then runs a table-driven
// multiply-accumulate over the data shards.
// Reconstruction inverts the k x k submatrix of the generator restricted
// to any k surviving shards and reuses the same table-driven kernel
// to rebuild the missing ones.
//
// A Code is immutable after construction and safe for concurrent use,
// provided concurrent calls operate on disjoint shard buffers.
// No operation blocks or performs I/O.
//
// The [Encoder] and [Reconstructor] types adapt a Code to the interfaces
// in [github.com/gordian-engine/gecc/gerasure].
package gereedsolomon
