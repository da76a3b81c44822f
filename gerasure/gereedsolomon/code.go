package gereedsolomon

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gordian-engine/gecc/gf256"
	"github.com/gordian-engine/gecc/gmem"
)

// Code is an immutable Reed-Solomon code configuration:
// shard counts, the generator matrix, and the lookup tables derived from it.
// All methods are pure functions of their inputs and the configuration,
// so a single Code may be shared freely across goroutines
// as long as concurrent calls use disjoint shard buffers.
type Code struct {
	dataShards   int
	parityShards int

	matrix Matrix
	tables *LookupTables
}

type codeConfig struct {
	vandermonde bool
	matrix      Matrix
}

// An Option adjusts how [New] builds a Code.
type Option func(*codeConfig)

// WithVandermonde selects the power-sequence generator of
// [NewVandermondeMatrix] instead of the default Cauchy construction.
func WithVandermonde() Option {
	return func(c *codeConfig) { c.vandermonde = true }
}

// WithMatrix supplies a caller-built (k+p) x k generator matrix,
// overriding both built-in constructions.
// The matrix is not checked for the MDS property;
// a reconstruction that happens to select a singular submatrix
// will fail with [ErrSingularMatrix].
func WithMatrix(m Matrix) Option {
	return func(c *codeConfig) { c.matrix = m }
}

// New returns a Code for dataShards data and parityShards parity shards.
// dataShards must be positive, parityShards non-negative,
// and their sum must not exceed 256.
func New(dataShards, parityShards int, opts ...Option) (*Code, error) {
	if err := checkShardCounts(dataShards, parityShards); err != nil {
		return nil, err
	}

	var cfg codeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var m Matrix
	switch {
	case cfg.matrix != nil:
		if len(cfg.matrix) != dataShards+parityShards {
			return nil, fmt.Errorf(
				"%w: generator matrix has %d rows, want %d",
				ErrInvalidParams, len(cfg.matrix), dataShards+parityShards,
			)
		}
		for r := range cfg.matrix {
			if len(cfg.matrix[r]) != dataShards {
				return nil, fmt.Errorf(
					"%w: generator matrix row %d has %d columns, want %d",
					ErrInvalidParams, r, len(cfg.matrix[r]), dataShards,
				)
			}
		}
		// Clone so the Code stays immutable even if the caller
		// reuses the supplied matrix.
		m = cfg.matrix.SubMatrixRows(rowIndices(len(cfg.matrix)))
	case cfg.vandermonde:
		var err error
		m, err = NewVandermondeMatrix(dataShards, parityShards)
		if err != nil {
			return nil, err
		}
	default:
		var err error
		m, err = NewCauchyMatrix(dataShards, parityShards)
		if err != nil {
			return nil, err
		}
	}

	tables, err := InitTables(m)
	if err != nil {
		return nil, err
	}

	return &Code{
		dataShards:   dataShards,
		parityShards: parityShards,
		matrix:       m,
		tables:       tables,
	}, nil
}

func rowIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// DataShards returns the configured number of data shards.
func (c *Code) DataShards() int { return c.dataShards }

// ParityShards returns the configured number of parity shards.
func (c *Code) ParityShards() int { return c.parityShards }

// TotalShards returns the total shard count, data plus parity.
func (c *Code) TotalShards() int { return c.dataShards + c.parityShards }

// Matrix returns a copy of the generator matrix.
func (c *Code) Matrix() Matrix {
	return c.matrix.SubMatrixRows(rowIndices(len(c.matrix)))
}

// Tables returns the lookup table set for the generator's parity rows.
// The result is shared and immutable.
func (c *Code) Tables() *LookupTables { return c.tables }

// Encode computes the parity shards.
// shards must hold the k data shards followed by the p parity shards,
// all the same length; zero-length shards are a valid no-op.
// The parity shards are fully overwritten; data shards are never written,
// so concurrent reads of them are safe.
// On error nothing has been written.
func (c *Code) Encode(shards [][]byte) error {
	if err := c.checkShards(shards); err != nil {
		return err
	}
	c.tables.encodeBlocks(shards[:c.dataShards], shards[c.dataShards:])
	return nil
}

// EncodeUpdate accumulates the contribution of the single data shard at
// index idx into all parity shards.
// Calling it once per data shard, over parity shards the caller zeroed
// beforehand, produces the same parity as one [Code.Encode] call;
// each index must be supplied exactly once, which is not checked.
func (c *Code) EncodeUpdate(dataShard []byte, idx int, parity [][]byte) error {
	if idx < 0 || idx >= c.dataShards {
		return fmt.Errorf(
			"%w: data shard index %d out of range [0, %d)",
			ErrInvalidParams, idx, c.dataShards,
		)
	}
	if len(parity) != c.parityShards {
		return fmt.Errorf(
			"%w: got %d parity shards, want %d",
			ErrInvalidParams, len(parity), c.parityShards,
		)
	}
	for j, p := range parity {
		if len(p) != len(dataShard) {
			return fmt.Errorf(
				"%w: parity shard %d is %d bytes, data shard is %d",
				ErrInvalidParams, j, len(p), len(dataShard),
			)
		}
	}

	// An all-zero shard contributes nothing to any parity row,
	// so skip the table passes entirely.
	if gmem.ZeroDetect(dataShard) {
		return nil
	}

	t := c.tables
	for j, p := range parity {
		switch coeff := t.rows[j][idx]; coeff {
		case 0:
			// No contribution.
		case 1:
			gf256.SliceXor(dataShard, p)
		default:
			gf256.VectMulXor(t.at(j, idx), dataShard, p)
		}
	}
	return nil
}

// Verify reports whether the parity shards are consistent with the data
// shards, by recomputing parity into scratch buffers and comparing.
// No shard is modified.
func (c *Code) Verify(shards [][]byte) (bool, error) {
	if err := c.checkShards(shards); err != nil {
		return false, err
	}
	if c.parityShards == 0 {
		return true, nil
	}

	size := len(shards[0])
	scratch := make([][]byte, c.parityShards)
	backing := make([]byte, c.parityShards*size)
	for j := range scratch {
		scratch[j], backing = backing[:size:size], backing[size:]
	}

	c.tables.encodeBlocks(shards[:c.dataShards], scratch)

	for j, p := range scratch {
		if !bytes.Equal(p, shards[c.dataShards+j]) {
			return false, nil
		}
	}
	return true, nil
}

// Split pads data into k equal-size data shards,
// the last zero-padded as needed,
// and allocates the p parity shards ready for [Code.Encode].
// The data shards reference the original slice where possible;
// data must not be modified while the shards are in use.
func (c *Code) Split(data []byte) ([][]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: cannot split empty data", ErrInvalidParams)
	}

	perShard := (len(data) + c.dataShards - 1) / c.dataShards

	shards := make([][]byte, c.TotalShards())
	for i := 0; i < c.dataShards; i++ {
		start := i * perShard
		switch {
		case start+perShard <= len(data):
			shards[i] = data[start : start+perShard : start+perShard]
		case start < len(data):
			padded := make([]byte, perShard)
			copy(padded, data[start:])
			shards[i] = padded
		default:
			shards[i] = make([]byte, perShard)
		}
	}

	backing := make([]byte, c.parityShards*perShard)
	for j := 0; j < c.parityShards; j++ {
		shards[c.dataShards+j], backing = backing[:perShard:perShard], backing[perShard:]
	}
	return shards, nil
}

// Join writes outSize bytes of the original data to dst,
// concatenating the data shards and trimming the padding added by
// [Code.Split].
// It needs only the data shards to be present;
// missing data shards or insufficient total bytes
// return [ErrTooFewShards].
func (c *Code) Join(dst io.Writer, shards [][]byte, outSize int) error {
	if len(shards) < c.dataShards {
		return fmt.Errorf(
			"%w: got %d shards, need the %d data shards",
			ErrTooFewShards, len(shards), c.dataShards,
		)
	}

	remaining := outSize
	for i := 0; i < c.dataShards && remaining > 0; i++ {
		shard := shards[i]
		if len(shard) == 0 {
			return fmt.Errorf("%w: data shard %d is missing", ErrTooFewShards, i)
		}
		if len(shard) > remaining {
			shard = shard[:remaining]
		}
		n, err := dst.Write(shard)
		if err != nil {
			return fmt.Errorf("failed to write joined data: %w", err)
		}
		remaining -= n
	}
	if remaining > 0 {
		return fmt.Errorf(
			"%w: shards hold %d fewer bytes than requested",
			ErrTooFewShards, remaining,
		)
	}
	return nil
}

// checkShards validates the shard slice for Encode and Verify:
// exactly k+p shards, all the same length.
func (c *Code) checkShards(shards [][]byte) error {
	if len(shards) != c.TotalShards() {
		return fmt.Errorf(
			"%w: got %d shards, want %d",
			ErrInvalidParams, len(shards), c.TotalShards(),
		)
	}
	size := len(shards[0])
	for i, s := range shards {
		if len(s) != size {
			return fmt.Errorf(
				"%w: shard %d is %d bytes, shard 0 is %d",
				ErrInvalidParams, i, len(s), size,
			)
		}
	}
	return nil
}
