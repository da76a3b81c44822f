package gereedsolomon_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/gordian-engine/gecc/gerasure/gereedsolomon"
	"github.com/stretchr/testify/require"
)

// encodedShards returns a fully encoded shard set of pseudorandom data.
func encodedShards(t *testing.T, c *gereedsolomon.Code, size int) [][]byte {
	t.Helper()

	rng := rand.NewChaCha8([32]byte{byte(c.DataShards()), byte(c.ParityShards()), byte(size)})
	shards := make([][]byte, c.TotalShards())
	for i := range shards {
		shards[i] = make([]byte, size)
		if i < c.DataShards() {
			_, _ = rng.Read(shards[i])
		}
	}
	require.NoError(t, c.Encode(shards))
	return shards
}

func cloneShards(shards [][]byte) [][]byte {
	out := make([][]byte, len(shards))
	for i, s := range shards {
		if s == nil {
			continue
		}
		out[i] = append([]byte(nil), s...)
	}
	return out
}

func TestCode_Reconstruct(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		k, p   int
		erased []int
	}{
		{k: 3, p: 2, erased: []int{0}},
		{k: 3, p: 2, erased: []int{2}},
		{k: 3, p: 2, erased: []int{0, 1}},
		{k: 3, p: 2, erased: []int{1, 4}},
		{k: 3, p: 2, erased: []int{3, 4}},
		{k: 5, p: 3, erased: []int{0, 2, 4}},
		{k: 5, p: 3, erased: []int{4, 5, 7}},
		{k: 10, p: 4, erased: []int{0, 3, 9, 12}},
		{k: 1, p: 1, erased: []int{0}},
		{k: 1, p: 1, erased: []int{1}},
	} {
		t.Run(fmt.Sprintf("k=%d p=%d erased=%v", tc.k, tc.p, tc.erased), func(t *testing.T) {
			t.Parallel()

			c, err := gereedsolomon.New(tc.k, tc.p)
			require.NoError(t, err)

			orig := encodedShards(t, c, 128)
			shards := cloneShards(orig)
			for _, e := range tc.erased {
				shards[e] = nil
			}

			require.NoError(t, c.Reconstruct(shards))

			// Every shard, erased or not, matches the pre-loss set.
			require.Equal(t, orig, shards)

			ok, err := c.Verify(shards)
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}

func TestCode_Reconstruct_EdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("nothing missing is a no-op", func(t *testing.T) {
		t.Parallel()

		c, err := gereedsolomon.New(3, 2)
		require.NoError(t, err)

		orig := encodedShards(t, c, 64)
		shards := cloneShards(orig)
		require.NoError(t, c.Reconstruct(shards))
		require.Equal(t, orig, shards)
	})

	t.Run("zero-length entries count as erased", func(t *testing.T) {
		t.Parallel()

		c, err := gereedsolomon.New(3, 2)
		require.NoError(t, err)

		orig := encodedShards(t, c, 64)
		shards := cloneShards(orig)
		shards[1] = []byte{}

		require.NoError(t, c.Reconstruct(shards))
		require.Equal(t, orig, shards)
	})

	t.Run("all shards empty is a no-op", func(t *testing.T) {
		t.Parallel()

		c, err := gereedsolomon.New(3, 2)
		require.NoError(t, err)

		shards := make([][]byte, 5)
		for i := range shards {
			shards[i] = []byte{}
		}
		require.NoError(t, c.Reconstruct(shards))
	})

	t.Run("too many missing shards", func(t *testing.T) {
		t.Parallel()

		c, err := gereedsolomon.New(3, 2)
		require.NoError(t, err)

		shards := encodedShards(t, c, 64)
		shards[0] = nil
		shards[2] = nil
		shards[4] = nil

		require.ErrorIs(t, c.Reconstruct(shards), gereedsolomon.ErrTooFewShards)
	})

	t.Run("mismatched present shard length", func(t *testing.T) {
		t.Parallel()

		c, err := gereedsolomon.New(3, 2)
		require.NoError(t, err)

		shards := encodedShards(t, c, 64)
		shards[1] = shards[1][:32]

		require.ErrorIs(t, c.Reconstruct(shards), gereedsolomon.ErrInvalidParams)
	})

	t.Run("wrong shard count", func(t *testing.T) {
		t.Parallel()

		c, err := gereedsolomon.New(3, 2)
		require.NoError(t, err)

		require.ErrorIs(t, c.Reconstruct(make([][]byte, 4)), gereedsolomon.ErrInvalidParams)
	})
}

func TestCode_ReconstructData(t *testing.T) {
	t.Parallel()

	c, err := gereedsolomon.New(4, 2)
	require.NoError(t, err)

	orig := encodedShards(t, c, 96)
	shards := cloneShards(orig)
	shards[1] = nil // data
	shards[5] = nil // parity

	require.NoError(t, c.ReconstructData(shards))

	// The data shard is rebuilt, the parity shard stays missing.
	require.Equal(t, orig[1], shards[1])
	require.Nil(t, shards[5])
}

func TestCode_Reconstruct_Vandermonde(t *testing.T) {
	t.Parallel()

	// Small geometries where the power-sequence construction
	// is known to keep the needed submatrices invertible.
	c, err := gereedsolomon.New(3, 2, gereedsolomon.WithVandermonde())
	require.NoError(t, err)

	for _, erased := range [][]int{{0}, {2}, {3, 4}} {
		t.Run(fmt.Sprintf("erased=%v", erased), func(t *testing.T) {
			orig := encodedShards(t, c, 80)
			shards := cloneShards(orig)
			for _, e := range erased {
				shards[e] = nil
			}

			require.NoError(t, c.Reconstruct(shards))
			require.Equal(t, orig, shards)
		})
	}
}

func TestCode_Reconstruct_SingularSubmatrix(t *testing.T) {
	t.Parallel()

	// A degenerate generator whose two parity rows are identical:
	// losing both data shards leaves a singular survivor submatrix.
	m := gereedsolomon.Matrix{
		{1, 0},
		{0, 1},
		{1, 1},
		{1, 1},
	}
	c, err := gereedsolomon.New(2, 2, gereedsolomon.WithMatrix(m))
	require.NoError(t, err)

	shards := encodedShards(t, c, 32)
	shards[0] = nil
	shards[1] = nil

	require.ErrorIs(t, c.Reconstruct(shards), gereedsolomon.ErrSingularMatrix)
}
