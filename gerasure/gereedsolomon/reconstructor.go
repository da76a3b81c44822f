package gereedsolomon

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/gordian-engine/gecc/gerasure"
)

// Reconstructor adapts a [Code] to the [gerasure.Reconstructor] interface,
// collecting shards one at a time until enough have arrived
// to solve for the missing data.
type Reconstructor struct {
	code *Code

	// allShards is the in-progress shard set in data-then-parity order;
	// entries stay nil until the matching index arrives.
	allShards [][]byte

	// seen tracks which shard indices have arrived,
	// so duplicate deliveries do not count toward the k threshold.
	seen *bitset.BitSet

	shardSize int

	// solved flips once reconstruction succeeded;
	// later shard deliveries are then ignored.
	solved bool
}

// NewReconstructor returns a new Reconstructor.
// The shardSize and total data size must be discovered out of band,
// as shards carry no framing of their own.
func NewReconstructor(dataShards, parityShards, shardSize int, opts ...Option) (*Reconstructor, error) {
	if parityShards <= 0 {
		return nil, fmt.Errorf("%w: parity shards must be > 0", ErrInvalidParams)
	}
	if shardSize <= 0 {
		return nil, fmt.Errorf("%w: shard size must be > 0, got %d", ErrInvalidParams, shardSize)
	}
	code, err := New(dataShards, parityShards, opts...)
	if err != nil {
		return nil, err
	}

	return &Reconstructor{
		code:      code,
		allShards: make([][]byte, code.TotalShards()),
		seen:      bitset.New(uint(code.TotalShards())),
		shardSize: shardSize,
	}, nil
}

// ReconstructData satisfies [gerasure.Reconstructor].
// We assume that the caller is keeping track of already delivered indices;
// nothing goes wrong if the same index arrives more than once,
// but it wastes some CPU cycles.
func (r *Reconstructor) ReconstructData(_ context.Context, idx int, shard []byte) error {
	if idx < 0 || idx >= r.code.TotalShards() {
		return fmt.Errorf(
			"%w: shard index %d out of range [0, %d)",
			ErrInvalidParams, idx, r.code.TotalShards(),
		)
	}
	if len(shard) != r.shardSize {
		panic(fmt.Errorf(
			"BUG: attempted to reconstruct with invalid shard size: want %d, got %d",
			r.shardSize, len(shard),
		))
	}

	if r.solved {
		return nil
	}

	// Keep a copy; the caller may reuse the shard buffer.
	if r.allShards[idx] == nil {
		r.allShards[idx] = make([]byte, r.shardSize)
	}
	copy(r.allShards[idx], shard)
	r.seen.Set(uint(idx))

	// Below k distinct shards no submatrix can be solved,
	// so skip the attempt entirely.
	if r.seen.Count() < uint(r.code.DataShards()) {
		return gerasure.ErrIncompleteSet
	}

	if err := r.code.ReconstructData(r.allShards); err != nil {
		if errors.Is(err, ErrTooFewShards) {
			// Cannot happen once seen.Count() >= k,
			// but mapping it keeps the interface contract airtight.
			return gerasure.ErrIncompleteSet
		}
		return fmt.Errorf("failed to attempt data reconstruction: %w", err)
	}

	r.solved = true
	return nil
}

// Data satisfies [gerasure.Reconstructor].
func (r *Reconstructor) Data(dst []byte, dataSize int) ([]byte, error) {
	if !r.solved {
		return nil, gerasure.ErrIncompleteSet
	}

	if cap(dst) < dataSize {
		dst = make([]byte, 0, dataSize)
	}

	// Wrap dst in a bytes.Buffer so Join has an io.Writer.
	// There are no other references to the buffer,
	// so handing out its underlying slice below is safe.
	buf := bytes.NewBuffer(dst)

	if err := r.code.Join(buf, r.allShards, dataSize); err != nil {
		return nil, fmt.Errorf("failed to write reconstructed data: %w", err)
	}

	return buf.Bytes(), nil
}
