package targets

import (
	"errors"
	"fmt"

	"github.com/willf/bloom"

	"github.com/mahdiidarabi/btc-puzzle/pkg/btcaddr"
)

// FalsePositiveRate sizes the bloom filter in front of the exact set.
const FalsePositiveRate = 1e-9

// ErrEmptySet is returned when no target addresses were supplied.
var ErrEmptySet = errors.New("targets: no target addresses")

// Set is an immutable set of mainnet P2PKH addresses.
//
// Lookups test a bloom filter first and confirm hits against an exact map,
// so Contains never reports a false positive or a false negative. A Set is
// safe for concurrent reads.
type Set struct {
	filter *bloom.BloomFilter
	exact  map[string]struct{}
	addrs  []string
}

// NewSet validates addrs and builds a set. Duplicates are dropped.
func NewSet(addrs []string) (*Set, error) {
	if len(addrs) == 0 {
		return nil, ErrEmptySet
	}

	s := &Set{
		filter: bloom.NewWithEstimates(uint(len(addrs)), FalsePositiveRate),
		exact:  make(map[string]struct{}, len(addrs)),
	}
	for i, addr := range addrs {
		if _, err := btcaddr.ValidateTarget(addr); err != nil {
			return nil, fmt.Errorf("target %d: %w", i+1, err)
		}
		if _, dup := s.exact[addr]; dup {
			continue
		}
		s.filter.Add([]byte(addr))
		s.exact[addr] = struct{}{}
		s.addrs = append(s.addrs, addr)
	}
	return s, nil
}

// Load parses path with the parser matching its extension and builds a set.
func Load(path string) (*Set, error) {
	return LoadWith(ParserFor(path), path)
}

// LoadWith parses source with p and builds a set.
func LoadWith(p Parser, source string) (*Set, error) {
	addrs, err := p.ParseTargets(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse targets: %w", err)
	}
	return NewSet(addrs)
}

// Contains reports whether addr is in the set.
func (s *Set) Contains(addr string) bool {
	if !s.filter.Test([]byte(addr)) {
		return false
	}
	_, ok := s.exact[addr]
	return ok
}

// Len returns the number of distinct addresses.
func (s *Set) Len() int { return len(s.addrs) }

// Addresses returns the distinct addresses in insertion order.
func (s *Set) Addresses() []string {
	return append([]string(nil), s.addrs...)
}
