package puzzle

import (
	"context"
	"math/big"
	"sync"

	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
)

// progressScale gives Progress eight decimal places.
var progressScale = big.NewInt(10_000_000_000)

// Cursor is a resumable search over a fixed target and range.
//
// Each Next call is an independent Search; the cursor only accumulates
// counters and remembers the first hit. A Cursor is safe for concurrent use.
type Cursor struct {
	searcher   *Searcher
	target     string
	start, end keyspace.Key
	rangeSize  *big.Int

	mu       sync.Mutex
	attempts uint64
	calls    uint64
	result   *SearchResult
}

// NewCursor returns a cursor searching [start, end] for target.
func (s *Searcher) NewCursor(target string, start, end keyspace.Key) *Cursor {
	return &Cursor{
		searcher:  s,
		target:    target,
		start:     start,
		end:       end,
		rangeSize: RangeCount(start, end),
	}
}

// Next runs one search of up to iterations samples. Once the target has been
// found, Next returns the stored result without searching again.
func (c *Cursor) Next(ctx context.Context, iterations uint32) (SearchResult, error) {
	c.mu.Lock()
	if c.result != nil {
		defer c.mu.Unlock()
		return *c.result, nil
	}
	c.mu.Unlock()

	result, err := c.searcher.Search(ctx, c.target, c.start, c.end, iterations)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts += uint64(result.Attempts)
	c.calls++
	if result.Found && c.result == nil {
		c.result = &result
	}
	return result, err
}

// Target returns the address the cursor searches for.
func (c *Cursor) Target() string { return c.target }

// Attempts returns the total number of samples drawn so far.
func (c *Cursor) Attempts() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// Calls returns the number of Next calls that ran a search.
func (c *Cursor) Calls() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Result returns the match, if any.
func (c *Cursor) Result() (SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return SearchResult{}, false
	}
	return *c.result, true
}

// Progress returns the attempts drawn so far as a percentage of the range
// size, truncated to eight decimal places. Samples are random, so this
// measures effort rather than coverage and may exceed 100.
func (c *Cursor) Progress() float64 {
	return Progress(c.Attempts(), c.rangeSize)
}

// Progress returns attempts as a percentage of rangeSize with eight decimal
// places. A zero range size yields 0.
func Progress(attempts uint64, rangeSize *big.Int) float64 {
	if attempts == 0 || rangeSize.Sign() == 0 {
		return 0
	}
	p := new(big.Int).SetUint64(attempts)
	p.Mul(p, progressScale)
	p.Quo(p, rangeSize)

	f, _ := new(big.Float).SetInt(p).Float64()
	return f / 1e8
}

// RangeCount returns the number of keys in [start, end], end - start + 1.
// An inverted range wraps modulo 2^256.
func RangeCount(start, end keyspace.Key) *big.Int {
	size := keyspace.RangeSize(start, end).Big()
	return size.Add(size, big.NewInt(1))
}
