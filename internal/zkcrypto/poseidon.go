package zkcrypto

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/iden3/go-iden3-crypto/poseidon"
)

// packWidth is the number of bytes packed into one field element.
const packWidth = 31

// Maximum padded lengths of the claim strings hashed into the address seed.
const (
	maxKeyClaimNameLength  = 32
	maxKeyClaimValueLength = 115
	maxAudValueLength      = 145
)

var fieldModulus = fr.Modulus()

func checkField(v *big.Int) error {
	if v.Sign() < 0 || v.Cmp(fieldModulus) >= 0 {
		return fmt.Errorf("value %s is not a bn254 scalar", v)
	}
	return nil
}

func poseidonHash(inputs ...*big.Int) (*big.Int, error) {
	for _, in := range inputs {
		if err := checkField(in); err != nil {
			return nil, err
		}
	}
	return poseidon.Hash(inputs)
}

// hashASCIIToField right-pads s with zero bytes to maxSize, packs it into
// 31-byte big-endian chunks counted from the end, and hashes the chunks.
func hashASCIIToField(s string, maxSize int) (*big.Int, error) {
	if len(s) > maxSize {
		return nil, fmt.Errorf("string %q is longer than %d bytes", s, maxSize)
	}
	padded := make([]byte, maxSize)
	copy(padded, s)

	n := (maxSize + packWidth - 1) / packWidth
	chunks := make([]*big.Int, n)
	end := len(padded)
	for i := n - 1; i >= 0; i-- {
		start := max(end-packWidth, 0)
		chunks[i] = new(big.Int).SetBytes(padded[start:end])
		end = start
	}
	return poseidonHash(chunks...)
}

// paddedBigEndian returns the low width bytes of v, left-padded with zeros.
func paddedBigEndian(v *big.Int, width int) []byte {
	b := v.Bytes()
	if len(b) > width {
		return b[len(b)-width:]
	}
	out := make([]byte, width)
	copy(out[width-len(b):], b)
	return out
}
