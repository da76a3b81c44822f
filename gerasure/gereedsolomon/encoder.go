package gereedsolomon

import (
	"context"
	"fmt"
)

// Encoder adapts a [Code] to the [gerasure.Encoder] interface,
// pairing the shard split with the parity computation.
type Encoder struct {
	code *Code
}

// NewEncoder returns a new Encoder.
// Unlike [New], parityShards must be positive here:
// an erasure encoder that cannot tolerate a single loss is a bug
// in the caller's configuration.
func NewEncoder(dataShards, parityShards int, opts ...Option) (*Encoder, error) {
	if parityShards <= 0 {
		return nil, fmt.Errorf("%w: parity shards must be > 0", ErrInvalidParams)
	}
	code, err := New(dataShards, parityShards, opts...)
	if err != nil {
		return nil, err
	}
	return &Encoder{code: code}, nil
}

// Code returns the underlying code configuration,
// shared with any [Reconstructor] built from the same parameters.
func (e *Encoder) Code() *Code { return e.code }

// Encode satisfies [gerasure.Encoder].
// The returned shards are the k data shards (views into data where possible)
// followed by the p freshly computed parity shards;
// callers should assume the Encoder takes ownership of the data slice.
func (e *Encoder) Encode(_ context.Context, data []byte) ([][]byte, error) {
	shards, err := e.code.Split(data)
	if err != nil {
		return nil, fmt.Errorf("failed to split input data: %w", err)
	}

	// Splitting only lays out the data shards;
	// the parity shards are still zero until encoded.
	if err := e.code.Encode(shards); err != nil {
		return nil, fmt.Errorf("failed to encode parity: %w", err)
	}

	return shards, nil
}
