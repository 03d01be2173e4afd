// Package btcaddr derives Bitcoin mainnet P2PKH addresses and WIF strings
// from raw private key scalars.
//
// The pipeline is scalar -> SEC1 public key -> hash160 -> Base58Check.
// Point multiplication is delegated to btcec; scalar range checks use the
// secp256k1 ModNScalar type.
package btcaddr
