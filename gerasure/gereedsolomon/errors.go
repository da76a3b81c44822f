package gereedsolomon

import "errors"

var (
	// ErrInvalidParams indicates arguments that can never be valid:
	// a non-positive data shard count, a negative parity shard count,
	// more than 256 total shards, a malformed generator matrix,
	// a wrong number of shards, or shards of unequal length.
	// Errors wrapping it are detected before any output buffer is written.
	ErrInvalidParams = errors.New("gereedsolomon: invalid parameters")

	// ErrTooFewShards indicates an unrecoverable loss:
	// fewer than k shards remain, so no choice of submatrix
	// can restore the missing ones.
	ErrTooFewShards = errors.New("gereedsolomon: too few shards to reconstruct")

	// ErrSingularMatrix indicates that Gauss-Jordan elimination found a
	// column with no usable pivot.
	// This cannot happen for a submatrix of the Cauchy generator,
	// but it is a required check for caller-supplied matrices.
	ErrSingularMatrix = errors.New("gereedsolomon: matrix is singular")
)
