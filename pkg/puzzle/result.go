package puzzle

import (
	"errors"

	"github.com/mahdiidarabi/btc-puzzle/pkg/btcaddr"
	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
)

var (
	// ErrMalformedInput is returned when a hex argument is not a 64 character
	// key.
	ErrMalformedInput = errors.New("puzzle: malformed input")
	// ErrInvalidScalar is returned when a key is zero or not below the curve
	// order.
	ErrInvalidScalar = btcaddr.ErrInvalidScalar
)

// AddressData is one entry of a generated batch.
type AddressData struct {
	Key                 keyspace.Key `json:"-"`
	PrivateKey          string       `json:"private_key"`          // 64 lowercase hex characters
	AddressUncompressed string       `json:"address_uncompressed"` // InvalidKey when !Valid
	AddressCompressed   string       `json:"address_compressed"`   // InvalidKey when !Valid
	Valid               bool         `json:"valid"`                // Key is a valid secp256k1 scalar
}

// SearchResult is the outcome of one bounded search call.
//
// KeysChecked always reports the requested iteration count, even when the
// key was found earlier. Attempts is the number of samples actually drawn.
type SearchResult struct {
	Found         bool         `json:"found"`
	Key           keyspace.Key `json:"-"`
	PrivateKeyHex string       `json:"private_key_hex,omitempty"`
	PrivateKeyWIF string       `json:"private_key_wif,omitempty"`
	AddressFound  string       `json:"address_found,omitempty"`
	Compressed    bool         `json:"compressed,omitempty"`
	KeysChecked   uint32       `json:"keys_checked"`
	Attempts      uint32       `json:"attempts"`
}

// Status classifies the error returned by a client operation.
type Status int

const (
	StatusOK Status = iota
	StatusMalformedInput
	StatusInvalidScalar
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMalformedInput:
		return "malformed_input"
	case StatusInvalidScalar:
		return "invalid_scalar"
	default:
		return "failed"
	}
}

// StatusOf maps an error returned by this package to a Status.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrMalformedInput):
		return StatusMalformedInput
	case errors.Is(err, ErrInvalidScalar):
		return StatusInvalidScalar
	default:
		return StatusFailed
	}
}

// Sentinel renders an address result the way string-only hosts expect it:
// the address itself, or btcaddr.InvalidKey on any error.
func Sentinel(addr string, err error) string {
	if err != nil {
		return btcaddr.InvalidKey
	}
	return addr
}
