package puzzle

import (
	"math/big"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/btc-puzzle/pkg/btcaddr"
	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
)

func TestPuzzles(t *testing.T) {
	puzzles := Puzzles()
	require.Len(t, puzzles, 10)

	for i, p := range puzzles {
		assert.Equal(t, 66+i, p.ID)
		assert.Equal(t, p.ID, p.Bits)
		assert.Equal(t, "Puzzle #"+strconv.Itoa(p.ID), p.Name)

		_, err := btcaddr.ValidateTarget(p.Address)
		assert.NoError(t, err, "puzzle %d address", p.ID)

		start, end, err := p.Range()
		require.NoError(t, err)
		assert.Equal(t, p.Bits, end.Big().BitLen())
		assert.Equal(t, p.Bits, start.Big().BitLen())

		size := keyspace.RangeSize(start, end).Big()
		size.Add(size, big.NewInt(1))
		assert.Zero(t, size.Cmp(p.RangeSize()), "puzzle %d range size", p.ID)
		assert.Equal(t, p.Solved, p.SolvedDate != "")
	}

	puzzles[0].Address = "changed"
	first, _ := PuzzleByID(66)
	assert.NotEqual(t, "changed", first.Address)
}

func TestPuzzleByID(t *testing.T) {
	p, ok := PuzzleByID(DefaultPuzzleID)
	require.True(t, ok)
	assert.Equal(t, "1PWo3JeB9jrGwfHDNpdGK54CRas7fsVzXU", p.Address)
	assert.False(t, p.Solved)

	start, end, err := p.Range()
	require.NoError(t, err)
	assert.Equal(t, "0000000000000000000000000000000000000000000000400000000000000000", start.String())
	assert.Equal(t, "00000000000000000000000000000000000000000000007fffffffffffffffff", end.String())

	_, ok = PuzzleByID(1)
	assert.False(t, ok)
}

func TestUnsolvedPuzzles(t *testing.T) {
	var ids []int
	for _, p := range UnsolvedPuzzles() {
		ids = append(ids, p.ID)
		assert.Positive(t, p.Reward)
	}
	assert.Equal(t, []int{71, 72, 73, 74}, ids)
}

func TestPuzzle_Range_Malformed(t *testing.T) {
	_, _, err := Puzzle{RangeStart: "xyz", RangeEnd: "1"}.Range()
	assert.ErrorIs(t, err, ErrMalformedInput)
}
