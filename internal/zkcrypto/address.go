package zkcrypto

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// KeyClaimName is the JWT claim the address is bound to. The verifier derives
// the seed with this exact, lower-case name.
const KeyClaimName = "sub"

const googleIssuer = "accounts.google.com"

// AddressSeed computes Poseidon(H(name), H(value), H(aud), Poseidon(salt)) and
// returns it in decimal.
func AddressSeed(salt, name, value, aud string) (string, error) {
	s, ok := new(big.Int).SetString(salt, 10)
	if !ok {
		return "", fmt.Errorf("invalid salt %q", salt)
	}

	hName, err := hashASCIIToField(name, maxKeyClaimNameLength)
	if err != nil {
		return "", err
	}
	hValue, err := hashASCIIToField(value, maxKeyClaimValueLength)
	if err != nil {
		return "", err
	}
	hAud, err := hashASCIIToField(aud, maxAudValueLength)
	if err != nil {
		return "", err
	}
	hSalt, err := poseidonHash(s)
	if err != nil {
		return "", err
	}

	seed, err := poseidonHash(hName, hValue, hAud, hSalt)
	if err != nil {
		return "", err
	}
	return seed.String(), nil
}

// Address derives the on-chain address for a seed and issuer.
func Address(addressSeed, iss string) (string, error) {
	seed, ok := new(big.Int).SetString(addressSeed, 10)
	if !ok {
		return "", fmt.Errorf("invalid address seed %q", addressSeed)
	}
	if iss == googleIssuer {
		iss = "https://" + googleIssuer
	}
	if len(iss) > 255 {
		return "", fmt.Errorf("issuer too long: %d bytes", len(iss))
	}

	buf := make([]byte, 0, 2+len(iss)+32)
	buf = append(buf, FlagZkLogin, byte(len(iss)))
	buf = append(buf, iss...)
	buf = append(buf, paddedBigEndian(seed, 32)...)

	sum := blake2b.Sum256(buf)
	return "0x" + hex.EncodeToString(sum[:]), nil
}

// JWTAddress derives the address of the identity (iss, aud, sub) under salt.
func JWTAddress(iss, aud, sub, salt string) (string, error) {
	seed, err := AddressSeed(salt, KeyClaimName, sub, aud)
	if err != nil {
		return "", err
	}
	return Address(seed, iss)
}
