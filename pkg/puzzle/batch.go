package puzzle

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/btc-puzzle/pkg/btcaddr"
	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
)

// BatchSize is the number of keys shown on one page.
const BatchSize = 128

// ErrPageOutOfRange is returned for page numbers outside [1, MaxPage()].
var ErrPageOutOfRange = errors.New("puzzle: page out of range")

// GenerateBatch derives count consecutive keys starting at start.
//
// Keys are stepped with keyspace.Key.Add and wrap modulo 2^256. Keys that are
// not valid scalars still produce an entry, with Valid unset and both
// addresses set to btcaddr.InvalidKey.
func GenerateBatch(start keyspace.Key, count uint32) []AddressData {
	batch := make([]AddressData, 0, count)

	key := start
	for i := uint32(0); i < count; i++ {
		if i > 0 {
			key = key.Add(1)
		}
		batch = append(batch, deriveEntry(key))
	}
	return batch
}

func deriveEntry(key keyspace.Key) AddressData {
	entry := AddressData{Key: key, PrivateKey: key.String()}

	pair, err := btcaddr.DerivePair(key)
	if err != nil {
		entry.AddressUncompressed = btcaddr.InvalidKey
		entry.AddressCompressed = btcaddr.InvalidKey
		return entry
	}

	entry.AddressUncompressed = pair.Uncompressed
	entry.AddressCompressed = pair.Compressed
	entry.Valid = true
	return entry
}

// MaxPage returns the number of the last page, the one holding
// keyspace.MaxPrivateKey.
func MaxPage() *big.Int {
	p := keyspace.MaxPrivateKey.Big()
	p.Sub(p, big.NewInt(1))
	p.Div(p, big.NewInt(BatchSize))
	return p.Add(p, big.NewInt(1))
}

// PageStart returns the first key of a 1-based page: (page-1)*128 + 1.
func PageStart(page *big.Int) (keyspace.Key, error) {
	if page == nil || page.Sign() <= 0 || page.Cmp(MaxPage()) > 0 {
		return keyspace.Key{}, fmt.Errorf("%w: %v", ErrPageOutOfRange, page)
	}

	start := new(big.Int).Sub(page, big.NewInt(1))
	start.Mul(start, big.NewInt(BatchSize))
	start.Add(start, big.NewInt(1))
	return keyspace.FromBig(start)
}

// PageOf returns the page holding key. Key zero sits before the first page
// and maps to page 0.
func PageOf(key keyspace.Key) *big.Int {
	p := key.Big()
	p.Sub(p, big.NewInt(1))
	p.Div(p, big.NewInt(BatchSize))
	return p.Add(p, big.NewInt(1))
}
