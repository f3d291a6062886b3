// Package zkcrypto wraps the cryptographic primitives the zkLogin flow relies
// on. Nothing here is novel cryptography: Ed25519 comes from the standard
// library, Poseidon from go-iden3-crypto, BLAKE2b from x/crypto. The package
// only fixes the encodings the verifying network expects.
//
// # Primitives
//
//   - Keypair, GenerateKeypair, ParseKeypair: the short-lived Ed25519 signer.
//   - GenerateRandomness: 128-bit randomness as a decimal string.
//   - Nonce: base64url(low 20 bytes of Poseidon(pk_hi, pk_lo, maxEpoch, randomness)).
//   - ExtendedPublicKey: decimal form of the flagged public key, sent to the prover.
//   - AddressSeed / Address / JWTAddress: salt + claims -> on-chain address.
//   - SignTransaction: intent-prefixed Ed25519 signature over transaction bytes.
//   - ZkLoginSignature: BCS envelope combining proof, seed, max epoch and the
//     ephemeral signature.
//
// Generate bundles the first three into the single call used when a login
// starts.
package zkcrypto
