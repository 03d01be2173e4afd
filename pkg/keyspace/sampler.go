package keyspace

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// ErrEntropy wraps failures of the random source.
var ErrEntropy = errors.New("keyspace: entropy source failed")

// Sampler draws candidate keys from an inclusive range.
type Sampler interface {
	// Sample returns a key drawn from [start, end]. Implementations may
	// document looser guarantees.
	Sample(start, end Key) (Key, error)

	// Name returns a short identifier for logs and flags.
	Name() string
}

// Sampler names accepted by NewSampler.
const (
	MaskSamplerName    = "mask"
	UniformSamplerName = "uniform"
)

// NewSampler returns the sampler registered under name, reading entropy
// from r (crypto/rand when r is nil).
func NewSampler(name string, r io.Reader) (Sampler, error) {
	switch name {
	case MaskSamplerName, "":
		return &MaskSampler{Rand: r}, nil
	case UniformSamplerName:
		return &UniformSampler{Rand: r}, nil
	default:
		return nil, fmt.Errorf("keyspace: unknown sampler %q", name)
	}
}

// MaskSampler is the approximate mask sampler.
//
// It draws 32 random bytes, masks byte i with size[i] | (size[i]-1) where
// size = end - start, and adds the masked bytes to start modulo 2^256. The
// result is biased and is only guaranteed to stay inside [start, end] when
// every byte of the range size has the form 2^k-1 with k >= 1. A zero byte
// in the size yields a 0xFF mask, so ranges narrower than 2^256 generally
// let samples escape above end. Callers that need coverage only, as the
// puzzle searcher does, tolerate this.
//
// A single-element range always yields its only element.
type MaskSampler struct {
	// Rand is the entropy source; nil means crypto/rand.
	Rand io.Reader
}

// Name implements Sampler.
func (s *MaskSampler) Name() string { return MaskSamplerName }

// Sample implements Sampler.
func (s *MaskSampler) Sample(start, end Key) (Key, error) {
	if start == end {
		return start, nil
	}

	size := RangeSize(start, end)

	var random Key
	if err := fill(s.Rand, random[:]); err != nil {
		return Key{}, err
	}

	for i := range random {
		random[i] &= size[i] | (size[i] - 1)
	}

	k, _ := AddKey(start, random)
	return k, nil
}

// UniformSampler draws uniformly from [start, end] by rejection sampling.
// It requires start <= end.
type UniformSampler struct {
	// Rand is the entropy source; nil means crypto/rand.
	Rand io.Reader
}

// Name implements Sampler.
func (s *UniformSampler) Name() string { return UniformSamplerName }

// Sample implements Sampler.
func (s *UniformSampler) Sample(start, end Key) (Key, error) {
	size, err := RangeSizeChecked(start, end)
	if err != nil {
		return Key{}, err
	}
	if size.IsZero() {
		return start, nil
	}

	// Mask off everything above the highest set bit of size so that each
	// draw is accepted with probability > 1/2.
	first := 0
	for size[first] == 0 {
		first++
	}
	top := byte(0xff)
	for top>>1 >= size[first] {
		top >>= 1
	}

	var random Key
	for {
		if err := fill(s.Rand, random[first:]); err != nil {
			return Key{}, err
		}
		random[first] &= top
		if Compare(random, size) <= 0 {
			break
		}
	}

	k, _ := AddKey(start, random)
	return k, nil
}

func fill(r io.Reader, b []byte) error {
	if r == nil {
		r = rand.Reader
	}
	if _, err := io.ReadFull(r, b); err != nil {
		return fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return nil
}
