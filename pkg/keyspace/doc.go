// Package keyspace implements fixed-width 256-bit key arithmetic and range
// sampling for private key searches.
//
// Keys are 32-byte big-endian unsigned integers. Arithmetic is modular:
// Add and RangeSize wrap modulo 2^256 without reporting anything, while
// AddChecked and RangeSizeChecked expose overflow and inverted ranges.
//
// Two samplers draw candidate keys from a range:
//
//	s := &keyspace.MaskSampler{}    // fast, biased, may escape the range
//	u := &keyspace.UniformSampler{} // exact, rejection based
//
//	k, err := s.Sample(start, end)
//
// Both fail with ErrEntropy when the random source cannot be read.
package keyspace
