package puzzle

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mahdiidarabi/btc-puzzle/pkg/btcaddr"
	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
)

// Client provides the high-level API used by hosts: batch generation,
// single address derivation, bounded puzzle search and benchmarking.
//
// Hex arguments are 64 characters, case-insensitive, without a 0x prefix.
type Client struct {
	searcher *Searcher
	logger   *zap.Logger
}

// NewClient creates a new client with default settings.
func NewClient() *Client {
	return &Client{
		searcher: NewSearcher(),
		logger:   zap.NewNop(),
	}
}

// WithSampler sets the sampler used by searches.
func (c *Client) WithSampler(sampler keyspace.Sampler) *Client {
	c.searcher.WithSampler(sampler)
	return c
}

// WithLogger sets the logger for the client and its searcher.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
	c.searcher.WithLogger(logger)
	return c
}

// Searcher returns the searcher backing PuzzleSearch.
func (c *Client) Searcher() *Searcher {
	return c.searcher
}

// GenerateAddressesBatch derives count consecutive keys starting at
// startKeyHex. See GenerateBatch.
func (c *Client) GenerateAddressesBatch(startKeyHex string, count uint32) ([]AddressData, error) {
	start, err := parseKey(startKeyHex)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("generating batch", zap.Stringer("start", start), zap.Uint32("count", count))
	return GenerateBatch(start, count), nil
}

// GenerateSingleAddress returns the P2PKH address of privateKeyHex.
//
// Malformed hex yields ErrMalformedInput and keys outside [1, n-1] yield
// ErrInvalidScalar. Use Sentinel for hosts that expect "invalid_key".
func (c *Client) GenerateSingleAddress(privateKeyHex string, compressed bool) (string, error) {
	key, err := parseKey(privateKeyHex)
	if err != nil {
		return "", err
	}
	return btcaddr.DeriveAddress(key, compressed)
}

// GenerateWIF returns the WIF encoding of privateKeyHex.
func (c *Client) GenerateWIF(privateKeyHex string, compressed bool) (string, error) {
	key, err := parseKey(privateKeyHex)
	if err != nil {
		return "", err
	}
	if err := btcaddr.ValidateScalar(key); err != nil {
		return "", err
	}
	return btcaddr.DeriveWIF(key, compressed), nil
}

// PuzzleSearch runs one bounded search for target in [startHex, endHex].
//
// Malformed bounds yield a zero result (Found false, KeysChecked 0) and
// ErrMalformedInput. The target is compared as a string and is not
// validated.
func (c *Client) PuzzleSearch(ctx context.Context, target, startHex, endHex string, iterations uint32) (SearchResult, error) {
	start, end, err := parseRange(startHex, endHex)
	if err != nil {
		return SearchResult{}, err
	}
	return c.searcher.Search(ctx, target, start, end, iterations)
}

// NewCursor returns a resumable search over [startHex, endHex].
func (c *Client) NewCursor(target, startHex, endHex string) (*Cursor, error) {
	start, end, err := parseRange(startHex, endHex)
	if err != nil {
		return nil, err
	}
	return c.searcher.NewCursor(target, start, end), nil
}

// PuzzleCursor returns a resumable search for a catalog puzzle.
func (c *Client) PuzzleCursor(id int) (*Cursor, error) {
	p, ok := PuzzleByID(id)
	if !ok {
		return nil, fmt.Errorf("puzzle: unknown puzzle %d", id)
	}
	start, end, err := p.Range()
	if err != nil {
		return nil, err
	}
	return c.searcher.NewCursor(p.Address, start, end), nil
}

// Benchmark returns the elapsed milliseconds for count iterations of
// deriving both addresses of a key. See Benchmark.
func (c *Client) Benchmark(count uint32) float64 {
	elapsed := Benchmark(count)

	c.logger.Info("benchmark finished",
		zap.Uint32("count", count),
		zap.Duration("elapsed", elapsed))
	return float64(elapsed) / float64(time.Millisecond)
}

func parseKey(s string) (keyspace.Key, error) {
	key, err := keyspace.ParseHex(s)
	if err != nil {
		return keyspace.Key{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return key, nil
}

func parseRange(startHex, endHex string) (start, end keyspace.Key, err error) {
	if start, err = parseKey(startHex); err != nil {
		return
	}
	end, err = parseKey(endHex)
	return
}
