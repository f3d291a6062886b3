package zkcrypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
)

// Signature scheme flags as used by the ledger's serialized signatures.
const (
	FlagEd25519 byte = 0x00
	FlagZkLogin byte = 0x05
)

var ErrInvalidPrivateKey = errors.New("invalid ephemeral private key")

// Keypair is an ephemeral Ed25519 signer.
type Keypair struct {
	priv ed25519.PrivateKey
}

func GenerateKeypair() (*Keypair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Keypair{priv: priv}, nil
}

// ParseKeypair restores a keypair from the output of Export.
func ParseKeypair(serialized string) (*Keypair, error) {
	seed, err := base64.StdEncoding.DecodeString(serialized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidPrivateKey, ed25519.SeedSize, len(seed))
	}
	return &Keypair{priv: ed25519.NewKeyFromSeed(seed)}, nil
}

// Export serializes the private key as base64 of the 32-byte seed.
func (k *Keypair) Export() string {
	return base64.StdEncoding.EncodeToString(k.priv.Seed())
}

func (k *Keypair) PublicKey() ed25519.PublicKey {
	return k.priv.Public().(ed25519.PublicKey)
}

// FlaggedPublicKey returns flag || pubkey.
func (k *Keypair) FlaggedPublicKey() []byte {
	return append([]byte{FlagEd25519}, k.PublicKey()...)
}

// ExtendedPublicKey is the big-endian integer value of the flagged public key,
// in decimal.
func (k *Keypair) ExtendedPublicKey() string {
	return new(big.Int).SetBytes(k.FlaggedPublicKey()).String()
}

func (k *Keypair) Sign(msg []byte) []byte {
	return ed25519.Sign(k.priv, msg)
}
