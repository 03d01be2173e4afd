package puzzle

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
)

func TestCursor_Next_Accumulates(t *testing.T) {
	// The all-zero hash160 address has no key in [1, 100].
	c := NewSearcher().
		WithSampler(&keyspace.UniformSampler{}).
		NewCursor("1111111111111111111114oLvT2", keyspace.FromUint64(1), keyspace.FromUint64(100))

	var last float64
	for i := 0; i < 4; i++ {
		result, err := c.Next(context.Background(), 10)
		require.NoError(t, err)
		assert.False(t, result.Found)

		p := c.Progress()
		assert.Greater(t, p, last)
		last = p
	}

	assert.Equal(t, uint64(40), c.Attempts())
	assert.Equal(t, uint64(4), c.Calls())
	assert.Equal(t, 40.0, c.Progress())

	_, ok := c.Result()
	assert.False(t, ok)
}

func TestCursor_Next_StopsAfterMatch(t *testing.T) {
	key := keyspace.FromUint64(1)
	c := NewSearcher().NewCursor(keyOneCompressed, key, key)
	assert.Equal(t, keyOneCompressed, c.Target())

	first, err := c.Next(context.Background(), 100)
	require.NoError(t, err)
	require.True(t, first.Found)

	again, err := c.Next(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, uint64(1), c.Calls())
	assert.Equal(t, uint64(1), c.Attempts())

	stored, ok := c.Result()
	require.True(t, ok)
	assert.Equal(t, keyOneHex, stored.PrivateKeyHex)
	assert.Equal(t, 100.0, c.Progress())
}

func TestCursor_Next_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewSearcher().NewCursor(keyOneCompressed, keyspace.FromUint64(2), keyspace.FromUint64(9))
	_, err := c.Next(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, c.Attempts())
	assert.Zero(t, c.Progress())
}

func TestRangeCount(t *testing.T) {
	assert.Zero(t, RangeCount(keyspace.FromUint64(3), keyspace.FromUint64(3)).Cmp(big.NewInt(1)))
	assert.Zero(t, RangeCount(keyspace.FromUint64(1), keyspace.FromUint64(100)).Cmp(big.NewInt(100)))
}

func TestProgress(t *testing.T) {
	size := new(big.Int).Lsh(big.NewInt(1), 70)

	assert.Zero(t, Progress(0, size))
	assert.Zero(t, Progress(10, new(big.Int)))
	assert.Equal(t, 50.0, Progress(1, big.NewInt(2)))

	// 2^30 of 2^70 keys is below the eight decimal resolution.
	assert.Zero(t, Progress(1<<30, size))
	assert.InDelta(t, 0.00038146, Progress(1<<52, size), 1e-12)
}
