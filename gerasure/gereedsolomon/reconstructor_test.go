package gereedsolomon_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/gordian-engine/gecc/gerasure"
	"github.com/gordian-engine/gecc/gerasure/gereedsolomon"
	"github.com/stretchr/testify/require"
)

func TestNewReconstructor_ParameterErrors(t *testing.T) {
	t.Parallel()

	_, err := gereedsolomon.NewReconstructor(4, 0, 16)
	require.ErrorIs(t, err, gereedsolomon.ErrInvalidParams)

	_, err = gereedsolomon.NewReconstructor(4, 2, 0)
	require.ErrorIs(t, err, gereedsolomon.ErrInvalidParams)
}

func TestReconstructor_ShardIndexOutOfRange(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, err := gereedsolomon.NewReconstructor(3, 2, 8)
	require.NoError(t, err)

	err = r.ReconstructData(ctx, -1, make([]byte, 8))
	require.ErrorIs(t, err, gereedsolomon.ErrInvalidParams)

	err = r.ReconstructData(ctx, 5, make([]byte, 8))
	require.ErrorIs(t, err, gereedsolomon.ErrInvalidParams)
}

func TestReconstructor_WrongShardSizePanics(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, err := gereedsolomon.NewReconstructor(3, 2, 8)
	require.NoError(t, err)

	require.Panics(t, func() {
		_ = r.ReconstructData(ctx, 0, make([]byte, 7))
	})
}

func TestReconstructor_DuplicateShardsDoNotCount(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	enc, err := gereedsolomon.NewEncoder(3, 2)
	require.NoError(t, err)

	data := []byte("duplicate deliveries must not satisfy the threshold")
	shards, err := enc.Encode(ctx, data)
	require.NoError(t, err)

	r, err := gereedsolomon.NewReconstructor(3, 2, len(shards[0]))
	require.NoError(t, err)

	// The same shard three times is still only one distinct shard.
	for i := 0; i < 3; i++ {
		err = r.ReconstructData(ctx, 0, shards[0])
		require.ErrorIs(t, err, gerasure.ErrIncompleteSet)
	}

	require.ErrorIs(t,
		r.ReconstructData(ctx, 3, shards[3]),
		gerasure.ErrIncompleteSet,
	)

	// A third distinct shard completes the set.
	require.NoError(t, r.ReconstructData(ctx, 4, shards[4]))

	got, err := r.Data(nil, len(data))
	require.NoError(t, err)
	require.True(t, bytes.Equal(got, data))
}

func TestReconstructor_DataBeforeSolved(t *testing.T) {
	t.Parallel()

	r, err := gereedsolomon.NewReconstructor(3, 2, 8)
	require.NoError(t, err)

	_, err = r.Data(nil, 24)
	require.ErrorIs(t, err, gerasure.ErrIncompleteSet)
}

func TestReconstructor_IgnoresShardsAfterSolved(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	enc, err := gereedsolomon.NewEncoder(2, 1)
	require.NoError(t, err)

	data := []byte("0123456789ab")
	shards, err := enc.Encode(ctx, data)
	require.NoError(t, err)

	r, err := gereedsolomon.NewReconstructor(2, 1, len(shards[0]))
	require.NoError(t, err)

	require.ErrorIs(t, r.ReconstructData(ctx, 0, shards[0]), gerasure.ErrIncompleteSet)
	require.NoError(t, r.ReconstructData(ctx, 1, shards[1]))

	// Feeding a bogus shard after solving changes nothing.
	bogus := bytes.Repeat([]byte{0xff}, len(shards[0]))
	require.NoError(t, r.ReconstructData(ctx, 2, bogus))

	got, err := r.Data(nil, len(data))
	require.NoError(t, err)
	require.True(t, bytes.Equal(got, data))
}
