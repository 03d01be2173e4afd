package keyspace

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
)

// KeySize is the width of a private key scalar in bytes.
const KeySize = 32

var (
	// ErrMalformedHex is returned when a key is not exactly 64 hex characters.
	ErrMalformedHex = errors.New("keyspace: key must be exactly 64 hex characters")
	// ErrKeyTooLarge is returned when a big integer does not fit in 256 bits.
	ErrKeyTooLarge = errors.New("keyspace: value does not fit in 256 bits")
)

// CurveOrder is the order n of the secp256k1 group.
var CurveOrder, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

// MaxPrivateKey is the largest valid private key scalar (n - 1).
var MaxPrivateKey = mustFromBig(new(big.Int).Sub(CurveOrder, big.NewInt(1)))

// Key is a 256-bit unsigned integer stored big-endian.
//
// Key is a value type: every operation returns a new Key and never mutates
// its receiver. A Key is not necessarily a valid secp256k1 scalar; range
// checks belong to address derivation.
type Key [KeySize]byte

// ParseHex parses a 64 character hex string, upper or lower case, without a
// 0x prefix.
func ParseHex(s string) (Key, error) {
	var k Key
	if len(s) != 2*KeySize {
		return k, fmt.Errorf("%w: got %d characters", ErrMalformedHex, len(s))
	}
	if _, err := hex.Decode(k[:], []byte(s)); err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrMalformedHex, err)
	}
	return k, nil
}

// FromUint64 returns the key with the given numeric value.
func FromUint64(v uint64) Key {
	var k Key
	for i := KeySize - 1; i >= KeySize-8; i-- {
		k[i] = byte(v)
		v >>= 8
	}
	return k
}

// FromBig converts a non-negative integer of at most 256 bits.
func FromBig(v *big.Int) (Key, error) {
	var k Key
	if v.Sign() < 0 || v.BitLen() > 8*KeySize {
		return k, ErrKeyTooLarge
	}
	v.FillBytes(k[:])
	return k, nil
}

func mustFromBig(v *big.Int) Key {
	k, err := FromBig(v)
	if err != nil {
		panic(err)
	}
	return k
}

// String returns the key as 64 lowercase hex characters.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Bytes returns a copy of the big-endian key bytes.
func (k Key) Bytes() []byte {
	b := make([]byte, KeySize)
	copy(b, k[:])
	return b
}

// Big returns the key as a big integer.
func (k Key) Big() *big.Int {
	return new(big.Int).SetBytes(k[:])
}

// IsZero reports whether every byte of the key is zero.
func (k Key) IsZero() bool {
	return k == Key{}
}

// Compare returns -1, 0 or +1 depending on whether a is less than, equal to
// or greater than b.
func Compare(a, b Key) int {
	for i := 0; i < KeySize; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}
