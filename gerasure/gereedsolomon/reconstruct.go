package gereedsolomon

import (
	"fmt"

	"github.com/gordian-engine/gecc/gf256"
)

// Reconstruct rebuilds every missing shard in place.
// shards must hold k+p entries in data-then-parity order;
// a nil or zero-length entry marks an erased shard,
// so erasure indices are distinct and in range by construction.
// Present shards must all be the same length.
//
// If more than p shards are missing, reconstruction is impossible and
// [ErrTooFewShards] is returned.
// Missing entries are (re)allocated and written with the original contents,
// bit-identical to the shards before loss;
// present shards are never modified.
// On error no shard has been written.
func (c *Code) Reconstruct(shards [][]byte) error {
	return c.reconstruct(shards, true)
}

// ReconstructData is like [Code.Reconstruct] but rebuilds only the
// missing data shards, leaving missing parity shards nil.
// It is the cheaper choice when the caller only needs the original data,
// such as the [Reconstructor] adapter.
func (c *Code) ReconstructData(shards [][]byte) error {
	return c.reconstruct(shards, false)
}

func (c *Code) reconstruct(shards [][]byte, withParity bool) error {
	if len(shards) != c.TotalShards() {
		return fmt.Errorf(
			"%w: got %d shards, want %d",
			ErrInvalidParams, len(shards), c.TotalShards(),
		)
	}

	// A shard is present if it carries bytes.
	// shardSize is derived from the survivors;
	// if every present shard is empty the whole operation is a
	// zero-length no-op and missing entries become empty shards too.
	shardSize := 0
	for _, s := range shards {
		if len(s) > shardSize {
			shardSize = len(s)
		}
	}

	survivors := make([]int, 0, c.dataShards)
	var erased []int
	for i, s := range shards {
		switch {
		case len(s) == shardSize && s != nil:
			survivors = append(survivors, i)
		case len(s) != 0:
			return fmt.Errorf(
				"%w: shard %d is %d bytes, others are %d",
				ErrInvalidParams, i, len(s), shardSize,
			)
		case i < c.dataShards || withParity:
			erased = append(erased, i)
		}
	}

	if len(erased) == 0 {
		return nil
	}
	if len(survivors) < c.dataShards {
		return fmt.Errorf(
			"%w: %d shards missing with only %d parity",
			ErrTooFewShards, c.TotalShards()-len(survivors), c.parityShards,
		)
	}

	// Any k survivors suffice; take the first k.
	survivors = survivors[:c.dataShards]

	sub := c.matrix.SubMatrixRows(survivors)
	inv, err := sub.Invert()
	if err != nil {
		return err
	}

	// One decode row per erased shard, all over the same k survivors:
	// for an erased data shard d the row is row d of the inverse
	// (the inverse maps survivor values back to the data vector);
	// for an erased parity shard e it is generator row e composed with
	// the inverse, so parity is rebuilt in the same pass
	// without materializing the data first.
	decodeRows := newMatrix(len(erased), c.dataShards)
	for n, e := range erased {
		if e < c.dataShards {
			copy(decodeRows[n], inv[e])
			continue
		}
		genRow := c.matrix[e]
		for j := 0; j < c.dataShards; j++ {
			var acc byte
			for i := 0; i < c.dataShards; i++ {
				acc ^= gf256.Mul(genRow[i], inv[i][j])
			}
			decodeRows[n][j] = acc
		}
	}

	tables := initTablesForRows(decodeRows, c.dataShards)

	srcs := make([][]byte, c.dataShards)
	for i, s := range survivors {
		srcs[i] = shards[s]
	}
	outs := make([][]byte, len(erased))
	for n, e := range erased {
		if cap(shards[e]) >= shardSize {
			shards[e] = shards[e][:shardSize]
		} else {
			shards[e] = make([]byte, shardSize)
		}
		outs[n] = shards[e]
	}

	tables.encodeBlocks(srcs, outs)
	return nil
}
