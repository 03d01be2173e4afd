package btcaddr

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160"

	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
)

const (
	// HashLength is the size of a hash160 digest.
	HashLength = 20
	// CompressedPubKeyLength is the size of a SEC1 compressed public key.
	CompressedPubKeyLength = 33
	// UncompressedPubKeyLength is the size of a SEC1 uncompressed public key.
	UncompressedPubKeyLength = 65

	// InvalidKey is the legacy marker some hosts print in place of an
	// address. It can never be a real address: '_' and 'l' are outside the
	// Base58 alphabet.
	InvalidKey = "invalid_key"
)

var (
	// ErrInvalidScalar is returned for keys equal to zero or not below the
	// secp256k1 group order.
	ErrInvalidScalar = errors.New("btcaddr: private key is not a valid secp256k1 scalar")
	// ErrChecksum is returned when a Base58Check checksum does not match.
	ErrChecksum = base58.ErrChecksum
	// ErrInvalidFormat is returned when a Base58Check string is too short or
	// contains characters outside the alphabet.
	ErrInvalidFormat = base58.ErrInvalidFormat
	// ErrUnsupportedTarget is returned for targets that are not mainnet P2PKH.
	ErrUnsupportedTarget = errors.New("btcaddr: target is not a mainnet P2PKH address")
)

// Pair holds both address encodings of one private key.
type Pair struct {
	Uncompressed string
	Compressed   string
}

// ValidateScalar checks that key is in [1, n-1].
func ValidateScalar(key keyspace.Key) error {
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(key[:]); overflow || s.IsZero() {
		return ErrInvalidScalar
	}
	return nil
}

// PublicKey returns the SEC1 encoding of the public key for key.
func PublicKey(key keyspace.Key, compressed bool) ([]byte, error) {
	pub, err := publicKey(key)
	if err != nil {
		return nil, err
	}
	if compressed {
		return pub.SerializeCompressed(), nil
	}
	return pub.SerializeUncompressed(), nil
}

func publicKey(key keyspace.Key) (*btcec.PublicKey, error) {
	if err := ValidateScalar(key); err != nil {
		return nil, err
	}
	_, pub := btcec.PrivKeyFromBytes(key[:])
	return pub, nil
}

// Hash160 returns RIPEMD160(SHA256(data)).
func Hash160(data []byte) []byte {
	sum := sha256.Sum256(data)

	h := ripemd160.New()
	h.Write(sum[:])

	return h.Sum(nil)
}

// EncodeAddress Base58Check-encodes a hash160 with the mainnet P2PKH
// version byte.
func EncodeAddress(hash []byte) string {
	return base58.CheckEncode(hash, chaincfg.MainNetParams.PubKeyHashAddrID)
}

// DeriveAddress returns the mainnet P2PKH address of key.
//
// Keys outside [1, n-1] yield ErrInvalidScalar.
func DeriveAddress(key keyspace.Key, compressed bool) (string, error) {
	pub, err := PublicKey(key, compressed)
	if err != nil {
		return "", err
	}
	return EncodeAddress(Hash160(pub)), nil
}

// DerivePair returns the uncompressed and compressed addresses of key,
// computing the public key point once.
func DerivePair(key keyspace.Key) (Pair, error) {
	pub, err := publicKey(key)
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		Uncompressed: EncodeAddress(Hash160(pub.SerializeUncompressed())),
		Compressed:   EncodeAddress(Hash160(pub.SerializeCompressed())),
	}, nil
}

// DeriveWIF returns the Wallet Import Format encoding of key:
// Base58Check(0x80 || key || [0x01 if compressed]).
//
// The key is encoded as given; it is not checked against the curve order.
func DeriveWIF(key keyspace.Key, compressed bool) string {
	payload := make([]byte, 0, keyspace.KeySize+1)
	payload = append(payload, key[:]...)
	if compressed {
		payload = append(payload, 0x01)
	}
	return base58.CheckEncode(payload, chaincfg.MainNetParams.PrivateKeyID)
}

// DecodeCheck decodes a Base58Check string and verifies its checksum.
func DecodeCheck(s string) ([]byte, byte, error) {
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return nil, 0, fmt.Errorf("btcaddr: decode %q: %w", s, err)
	}
	return payload, version, nil
}

// ValidateTarget checks that addr is a well formed mainnet P2PKH address
// and returns its hash160.
func ValidateTarget(addr string) ([]byte, error) {
	decoded, err := btcutil.DecodeAddress(addr, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedTarget, err)
	}

	pkh, ok := decoded.(*btcutil.AddressPubKeyHash)
	if !ok || !pkh.IsForNet(&chaincfg.MainNetParams) {
		return nil, fmt.Errorf("%w: %s is %T", ErrUnsupportedTarget, addr, decoded)
	}
	return pkh.Hash160()[:], nil
}
