package puzzle

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mahdiidarabi/btc-puzzle/pkg/btcaddr"
	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
)

// ctxCheckInterval is how many samples are drawn between context checks.
// It must be a power of two.
const ctxCheckInterval = 1024

// Searcher runs bounded random searches for a target address.
//
// A Searcher holds no per-search state, so one value can serve concurrent
// Search calls as long as its sampler is safe for concurrent use. The
// built-in samplers are safe when they read from crypto/rand. A sampler
// built on a shared reader such as a bytes.Reader is not.
type Searcher struct {
	sampler keyspace.Sampler
	logger  *zap.Logger
}

// NewSearcher returns a searcher using the approximate mask sampler over
// crypto/rand.
func NewSearcher() *Searcher {
	return &Searcher{
		sampler: &keyspace.MaskSampler{},
		logger:  zap.NewNop(),
	}
}

// WithSampler sets the sampler used to draw candidate keys.
func (s *Searcher) WithSampler(sampler keyspace.Sampler) *Searcher {
	s.sampler = sampler
	return s
}

// WithLogger sets the logger. A nil logger disables logging.
func (s *Searcher) WithLogger(logger *zap.Logger) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger
	return s
}

// Sampler returns the sampler in use.
func (s *Searcher) Sampler() keyspace.Sampler {
	return s.sampler
}

// AddressSet is a set of target addresses.
type AddressSet interface {
	Contains(addr string) bool
	Len() int
}

// Search draws up to iterations keys from [start, end] and compares each
// key's compressed address, then its uncompressed address, against target.
//
// On a match the result carries the key, its WIF for the matching
// compression and the matched address. KeysChecked is set to iterations
// whether or not the key was found. Sampled keys that are not valid
// scalars never match.
//
// If ctx is cancelled the partial result is returned with KeysChecked equal
// to Attempts, together with ctx.Err(). Entropy failures are returned
// wrapped in keyspace.ErrEntropy.
func (s *Searcher) Search(ctx context.Context, target string, start, end keyspace.Key, iterations uint32) (SearchResult, error) {
	match := func(addr string) bool { return addr == target }
	return s.search(ctx, match, s.logger.With(zap.String("target", target)), start, end, iterations)
}

// SearchSet is Search against every address in set.
func (s *Searcher) SearchSet(ctx context.Context, set AddressSet, start, end keyspace.Key, iterations uint32) (SearchResult, error) {
	return s.search(ctx, set.Contains, s.logger.With(zap.Int("targets", set.Len())), start, end, iterations)
}

func (s *Searcher) search(ctx context.Context, match func(string) bool, logger *zap.Logger, start, end keyspace.Key, iterations uint32) (SearchResult, error) {
	for i := uint32(0); i < iterations; i++ {
		if i&(ctxCheckInterval-1) == 0 {
			select {
			case <-ctx.Done():
				logger.Debug("search cancelled", zap.Uint32("attempts", i))
				return SearchResult{KeysChecked: i, Attempts: i}, ctx.Err()
			default:
			}
		}

		key, err := s.sampler.Sample(start, end)
		if err != nil {
			logger.Error("sampling failed", zap.String("sampler", s.sampler.Name()), zap.Error(err))
			return SearchResult{KeysChecked: i, Attempts: i}, err
		}

		result, ok, err := MatchFunc(match, key)
		if err != nil {
			continue
		}
		if ok {
			result.KeysChecked = iterations
			result.Attempts = i + 1
			logger.Info("target found",
				zap.String("address", result.AddressFound),
				zap.Bool("compressed", result.Compressed),
				zap.Uint32("attempts", result.Attempts))
			return result, nil
		}
	}

	logger.Debug("search exhausted", zap.Uint32("iterations", iterations))
	return SearchResult{KeysChecked: iterations, Attempts: iterations}, nil
}

// Match derives both addresses of key and compares them against target,
// compressed first. The returned result has its counters unset.
func Match(target string, key keyspace.Key) (SearchResult, bool, error) {
	return MatchFunc(func(addr string) bool { return addr == target }, key)
}

// MatchFunc is Match against an arbitrary address predicate.
func MatchFunc(contains func(addr string) bool, key keyspace.Key) (SearchResult, bool, error) {
	pair, err := btcaddr.DerivePair(key)
	if err != nil {
		return SearchResult{}, false, err
	}

	switch {
	case contains(pair.Compressed):
		return found(key, pair.Compressed, true), true, nil
	case contains(pair.Uncompressed):
		return found(key, pair.Uncompressed, false), true, nil
	}
	return SearchResult{}, false, nil
}

func found(key keyspace.Key, addr string, compressed bool) SearchResult {
	return SearchResult{
		Found:         true,
		Key:           key,
		PrivateKeyHex: key.String(),
		PrivateKeyWIF: btcaddr.DeriveWIF(key, compressed),
		AddressFound:  addr,
		Compressed:    compressed,
	}
}

// IsCancelled reports whether err came from a cancelled or expired context.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
