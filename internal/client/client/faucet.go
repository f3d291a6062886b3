package client

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/zklogin/internal/netx"
)

type Faucet interface {
	RequestGas(ctx context.Context, recipient string) error
}

type HTTPFaucet struct {
	url     string
	http    *http.Client
	timeout time.Duration
}

func NewHTTPFaucet(url string, timeout time.Duration, hc *http.Client) *HTTPFaucet {
	return &HTTPFaucet{url: url, http: hc, timeout: timeout}
}

type faucetRequest struct {
	FixedAmountRequest struct {
		Recipient string `json:"recipient"`
	} `json:"FixedAmountRequest"`
}

func (f *HTTPFaucet) RequestGas(ctx context.Context, recipient string) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var req faucetRequest
	req.FixedAmountRequest.Recipient = recipient
	if err := netx.PostJSON(ctx, f.http, f.url, req, nil); err != nil {
		return serviceError("request gas", err)
	}
	return nil
}
