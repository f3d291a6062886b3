package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/zklogin/internal/client/client"
	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// ---- ledger ----

type fakeLedger struct {
	mu sync.Mutex

	Epoch    uint64
	EpochErr error

	Balances   map[string]uint64
	BalanceErr map[string]error
	BalanceN   int

	TxBytes  []byte
	BuildErr error

	ExecErr     error
	LastSig     string
	LastTx      []byte
	LastIntent  models.TxIntent
	LastSender  string
	ExecCounter int
}

func (f *fakeLedger) CurrentEpoch(context.Context) (uint64, error) {
	return f.Epoch, f.EpochErr
}

func (f *fakeLedger) Balance(_ context.Context, addr string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BalanceN++
	if err := f.BalanceErr[addr]; err != nil {
		return 0, err
	}
	return f.Balances[addr], nil
}

func (f *fakeLedger) BuildTransfer(_ context.Context, sender string, intent models.TxIntent) ([]byte, error) {
	f.LastSender = sender
	f.LastIntent = intent
	if f.BuildErr != nil {
		return nil, f.BuildErr
	}
	return f.TxBytes, nil
}

func (f *fakeLedger) Execute(_ context.Context, txBytes []byte, sig string) (*models.Receipt, error) {
	f.ExecCounter++
	f.LastTx = txBytes
	f.LastSig = sig
	if f.ExecErr != nil {
		return nil, f.ExecErr
	}
	return &models.Receipt{Digest: "DIGEST", Status: "success"}, nil
}

// ---- salt ----

type fakeSalt struct {
	Salt    string
	Err     error
	Calls   int
	LastJWT string
}

func (f *fakeSalt) GetSalt(_ context.Context, jwt string) (string, error) {
	f.Calls++
	f.LastJWT = jwt
	return f.Salt, f.Err
}

func (f *fakeSalt) Close() error { return nil }

// ---- prover ----

type fakeProver struct {
	Blob    models.ProofBlob
	Err     error
	Calls   int
	LastReq client.ProofRequest
}

func (f *fakeProver) Prove(_ context.Context, req client.ProofRequest) (models.ProofBlob, error) {
	f.Calls++
	f.LastReq = req
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Blob, nil
}

// ---- navigator ----

type fakeNav struct {
	URLs []string
	Err  error
}

func (f *fakeNav) Navigate(_ context.Context, url string) error {
	f.URLs = append(f.URLs, url)
	return f.Err
}

// ---- helpers ----

var errBoom = errors.New("boom")

func serviceFailure(err error) error {
	return errors.Join(common.ErrServiceFailure, err)
}

const testProofJSON = `{"proofPoints":{"a":["1","2","1"],"b":[["3","4"],["5","6"],["1","0"]],"c":["7","8","1"]},"issBase64Details":{"value":"wiaXNzIjoiaHR0cHM6Ly9hY2NvdW50cy5nb29nbGUuY29tIiw","indexMod4":1},"headerBase64":"eyJhbGciOiJSUzI1NiJ9"}`

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func googleToken(t *testing.T, sub, aud string) string {
	return mintToken(t, jwt.MapClaims{
		"iss": "https://accounts.google.com",
		"sub": sub,
		"aud": aud,
	})
}
