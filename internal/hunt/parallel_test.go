package hunt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mahdiidarabi/btc-puzzle/internal/targets"
	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
	"github.com/mahdiidarabi/btc-puzzle/pkg/puzzle"
)

const keyOneCompressed = "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func testConfig() Config {
	return Config{Workers: 4, IterationsPerCall: 10}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Zero(t, cfg.Workers)
	assert.Equal(t, uint32(10000), cfg.IterationsPerCall)
	assert.Zero(t, cfg.MaxCalls)
	assert.Equal(t, 10*time.Second, cfg.ReportInterval)

	assert.Equal(t, cfg, New(puzzle.NewSearcher()).Config())
}

func TestHunter_Run_Found(t *testing.T) {
	key := keyspace.FromUint64(1)

	outcome, err := New(puzzle.NewSearcher()).
		WithConfig(testConfig()).
		Run(context.Background(), keyOneCompressed, key, key)
	require.NoError(t, err)

	require.True(t, outcome.Found)
	assert.Equal(t, key, outcome.Result.Key)
	assert.Equal(t, keyOneCompressed, outcome.Result.AddressFound)
	assert.GreaterOrEqual(t, outcome.Attempts, uint64(1))
	assert.GreaterOrEqual(t, outcome.Calls, uint64(1))
	assert.Equal(t, 4, outcome.Workers)
}

func TestHunter_Run_MaxCalls(t *testing.T) {
	key := keyspace.FromUint64(5)
	cfg := Config{Workers: 3, IterationsPerCall: 7, MaxCalls: 5}

	outcome, err := New(puzzle.NewSearcher()).WithConfig(cfg).
		Run(context.Background(), keyOneCompressed, key, key)
	require.NoError(t, err)

	assert.False(t, outcome.Found)
	assert.Equal(t, uint64(5), outcome.Calls)
	assert.Equal(t, uint64(35), outcome.Attempts)
	assert.Equal(t, 3500.0, outcome.Progress)
}

func TestHunter_Run_ZeroIterations(t *testing.T) {
	key := keyspace.FromUint64(1)
	hunter := New(puzzle.NewSearcher()).WithConfig(Config{Workers: 2})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	outcome, err := hunter.Run(ctx, keyOneCompressed, key, key)
	assert.ErrorIs(t, err, ErrNoIterations)
	assert.Nil(t, outcome)

	set, err := targets.NewSet([]string{keyOneCompressed})
	require.NoError(t, err)
	_, err = hunter.RunSet(ctx, set, key, key)
	assert.ErrorIs(t, err, ErrNoIterations)
	assert.NoError(t, ctx.Err())
}

func TestHunter_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	key := keyspace.FromUint64(2)
	outcome, err := New(puzzle.NewSearcher()).WithConfig(testConfig()).
		Run(ctx, keyOneCompressed, key, key)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, outcome.Found)
	assert.Positive(t, outcome.Attempts)
	assert.Positive(t, outcome.Rate())
}

func TestHunter_Run_EntropyFailure(t *testing.T) {
	s := puzzle.NewSearcher().WithSampler(&keyspace.MaskSampler{Rand: failingReader{}})

	outcome, err := New(s).WithConfig(testConfig()).
		Run(context.Background(), keyOneCompressed, keyspace.FromUint64(1), keyspace.FromUint64(100))
	assert.ErrorIs(t, err, keyspace.ErrEntropy)
	assert.False(t, outcome.Found)
	assert.Zero(t, outcome.Attempts)
}

func TestHunter_RunSet(t *testing.T) {
	set, err := targets.NewSet([]string{"1PWo3JeB9jrGwfHDNpdGK54CRas7fsVzXU", keyOneCompressed})
	require.NoError(t, err)

	key := keyspace.FromUint64(1)
	outcome, err := New(puzzle.NewSearcher()).WithConfig(testConfig()).
		RunSet(context.Background(), set, key, key)
	require.NoError(t, err)

	require.True(t, outcome.Found)
	assert.Equal(t, keyOneCompressed, outcome.Result.AddressFound)
}

func TestHunter_WithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	key := keyspace.FromUint64(1)

	cfg := testConfig()
	cfg.ReportInterval = time.Millisecond
	_, err := New(puzzle.NewSearcher()).WithConfig(cfg).WithLogger(zap.New(core)).
		Run(context.Background(), keyOneCompressed, key, key)
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("starting hunt").Len())
	finished := logs.FilterMessage("hunt finished: target found").All()
	require.Len(t, finished, 1)
	assert.Equal(t, keyOneCompressed, finished[0].ContextMap()["target"])
}

func TestOutcome_Rate(t *testing.T) {
	assert.Zero(t, (&Outcome{Attempts: 10}).Rate())
	assert.Equal(t, 5.0, (&Outcome{Attempts: 10, Elapsed: 2 * time.Second}).Rate())
}
