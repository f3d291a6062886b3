package zkcrypto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// transactionIntent is the intent prefix for transaction data: scope 0,
// version 0, app id 0.
var transactionIntent = []byte{0, 0, 0}

var ErrInvalidProof = errors.New("invalid proof payload")

// SignTransaction signs txBytes with the ephemeral key and returns the
// serialized signature (flag || sig || pubkey) in base64.
func SignTransaction(kp *Keypair, txBytes []byte) string {
	msg := make([]byte, 0, len(transactionIntent)+len(txBytes))
	msg = append(msg, transactionIntent...)
	msg = append(msg, txBytes...)
	digest := blake2b.Sum256(msg)

	sig := kp.Sign(digest[:])

	out := make([]byte, 0, 1+len(sig)+32)
	out = append(out, FlagEd25519)
	out = append(out, sig...)
	out = append(out, kp.PublicKey()...)
	return base64.StdEncoding.EncodeToString(out)
}

// proofInputs mirrors the prover response. Only ZkLoginSignature looks inside
// it; everywhere else the proof is carried as raw JSON.
type proofInputs struct {
	ProofPoints struct {
		A []string   `json:"a"`
		B [][]string `json:"b"`
		C []string   `json:"c"`
	} `json:"proofPoints"`
	IssBase64Details struct {
		Value     string `json:"value"`
		IndexMod4 uint8  `json:"indexMod4"`
	} `json:"issBase64Details"`
	HeaderBase64 string `json:"headerBase64"`
}

// ZkLoginSignature composes the final authenticator from the stored proof,
// the address seed, maxEpoch and the ephemeral user signature (base64).
func ZkLoginSignature(proof json.RawMessage, addressSeed string, maxEpoch uint64, userSignature string) (string, error) {
	var in proofInputs
	if err := json.Unmarshal(proof, &in); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidProof, err)
	}
	if len(in.ProofPoints.A) == 0 || len(in.ProofPoints.B) == 0 || len(in.ProofPoints.C) == 0 {
		return "", fmt.Errorf("%w: missing proof points", ErrInvalidProof)
	}

	userSig, err := base64.StdEncoding.DecodeString(userSignature)
	if err != nil {
		return "", fmt.Errorf("decode user signature: %w", err)
	}

	var w bcsWriter
	w.u8(FlagZkLogin)

	w.strings(in.ProofPoints.A)
	w.uleb128(uint64(len(in.ProofPoints.B)))
	for _, row := range in.ProofPoints.B {
		w.strings(row)
	}
	w.strings(in.ProofPoints.C)
	w.string(in.IssBase64Details.Value)
	w.u8(in.IssBase64Details.IndexMod4)
	w.string(in.HeaderBase64)
	w.string(addressSeed)

	w.u64(maxEpoch)
	w.bytes(userSig)

	return base64.StdEncoding.EncodeToString(w.buf.Bytes()), nil
}
