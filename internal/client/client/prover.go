package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/netx"
	"github.com/dmitrijs2005/zklogin/internal/zkcrypto"
)

// ProofRequest is the body the proving service expects. MaxEpoch goes out
// as a decimal string, the way the service's own clients send it.
type ProofRequest struct {
	MaxEpoch                   uint64 `json:"maxEpoch,string"`
	JWTRandomness              string `json:"jwtRandomness"`
	ExtendedEphemeralPublicKey string `json:"extendedEphemeralPublicKey"`
	JWT                        string `json:"jwt"`
	Salt                       string `json:"salt"`
	KeyClaimName               string `json:"keyClaimName"`
}

type Prover interface {
	Prove(ctx context.Context, req ProofRequest) (models.ProofBlob, error)
}

type HTTPProver struct {
	url     string
	http    *http.Client
	timeout time.Duration
}

func NewHTTPProver(url string, timeout time.Duration, hc *http.Client) *HTTPProver {
	return &HTTPProver{url: url, http: hc, timeout: timeout}
}

// Prove returns the response body untouched. An empty KeyClaimName defaults
// to "sub".
func (p *HTTPProver) Prove(ctx context.Context, req ProofRequest) (models.ProofBlob, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if req.KeyClaimName == "" {
		req.KeyClaimName = zkcrypto.KeyClaimName
	}

	var out json.RawMessage
	if err := netx.PostJSON(ctx, p.http, p.url, req, &out); err != nil {
		return nil, serviceError("request proof", err)
	}
	if len(bytes.TrimSpace(out)) == 0 || bytes.Equal(out, []byte("null")) {
		return nil, serviceError("request proof", ErrEmptyProof)
	}
	return models.ProofBlob(out), nil
}
