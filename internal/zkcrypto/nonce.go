package zkcrypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

// NonceLength is the length of a base64url-encoded nonce.
const NonceLength = 27

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

// GenerateRandomness returns 16 random bytes as a decimal string.
func GenerateRandomness() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return new(big.Int).SetBytes(b).String(), nil
}

// Nonce binds the ephemeral public key to maxEpoch and randomness. The
// identity provider echoes it back inside the token, and the proving service
// recomputes it, so randomness must be the exact value that was persisted.
func Nonce(flaggedPublicKey []byte, maxEpoch uint64, randomness string) (string, error) {
	r, ok := new(big.Int).SetString(randomness, 10)
	if !ok {
		return "", fmt.Errorf("invalid randomness %q", randomness)
	}

	pk := new(big.Int).SetBytes(flaggedPublicKey)
	hi, lo := new(big.Int).QuoRem(pk, two128, new(big.Int))

	h, err := poseidonHash(hi, lo, new(big.Int).SetUint64(maxEpoch), r)
	if err != nil {
		return "", fmt.Errorf("nonce hash: %w", err)
	}

	nonce := base64.RawURLEncoding.EncodeToString(paddedBigEndian(h, 20))
	if len(nonce) != NonceLength {
		return "", fmt.Errorf("unexpected nonce length %d", len(nonce))
	}
	return nonce, nil
}

// Ephemeral is the key material created when a login starts.
type Ephemeral struct {
	Keypair    *Keypair
	Randomness string
	Nonce      string
}

// Generate creates a fresh keypair and randomness and derives the nonce for
// maxEpoch.
func Generate(maxEpoch uint64) (*Ephemeral, error) {
	kp, err := GenerateKeypair()
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	randomness, err := GenerateRandomness()
	if err != nil {
		return nil, fmt.Errorf("generate randomness: %w", err)
	}
	nonce, err := Nonce(kp.FlaggedPublicKey(), maxEpoch, randomness)
	if err != nil {
		return nil, err
	}
	return &Ephemeral{Keypair: kp, Randomness: randomness, Nonce: nonce}, nil
}
