package puzzle

import (
	"time"

	"github.com/mahdiidarabi/btc-puzzle/pkg/btcaddr"
	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
)

// Benchmark derives the uncompressed and compressed address of count
// consecutive keys starting at 1 and returns the elapsed time.
func Benchmark(count uint32) time.Duration {
	begin := time.Now()

	key := keyspace.FromUint64(1)
	for i := uint32(0); i < count; i++ {
		_, _ = btcaddr.DeriveAddress(key, false)
		_, _ = btcaddr.DeriveAddress(key, true)
		key = key.Add(1)
	}

	return time.Since(begin)
}
