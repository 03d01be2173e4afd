package keyspace

import (
	"errors"
	"math"
	"math/big"
)

// ErrPosition is returned when a relative position lies outside [0, 1].
var ErrPosition = errors.New("keyspace: position must be between 0 and 1")

// positionScale fixes the resolution of FromPosition to ten decimal places.
const positionScale = 1e10

// FromPosition maps a relative position in [0, 1] onto the private key
// space: 0 maps to key 1, 1 maps to MaxPrivateKey and values in between
// scale MaxPrivateKey linearly at a resolution of 1e-10.
func FromPosition(p float64) (Key, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return Key{}, ErrPosition
	}
	if p == 1 {
		return MaxPrivateKey, nil
	}

	k := MaxPrivateKey.Big()
	k.Mul(k, big.NewInt(int64(math.Round(p*positionScale))))
	k.Quo(k, big.NewInt(positionScale))
	if k.Sign() == 0 {
		return FromUint64(1), nil
	}
	return FromBig(k)
}

// Position is the inverse of FromPosition, rounded to the same resolution.
func Position(k Key) float64 {
	v := k.Big()
	v.Mul(v, big.NewInt(positionScale))
	v.Quo(v, MaxPrivateKey.Big())
	f, _ := new(big.Float).SetInt(v).Float64()
	return f / positionScale
}
