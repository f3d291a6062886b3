package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/zklogin/internal/netx"
	"github.com/dmitrijs2005/zklogin/internal/saltrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// SaltService resolves the user salt for a raw identity token.
type SaltService interface {
	GetSalt(ctx context.Context, jwt string) (string, error)
	Close() error
}

// NewSaltService picks the transport from the URL scheme: grpc://host:port
// dials the gRPC service, anything else is treated as the HTTP endpoint.
func NewSaltService(rawURL string, timeout time.Duration) (SaltService, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("salt service url: %w", err)
	}
	if u.Scheme == "grpc" {
		return NewGRPCSaltClient(u.Host, timeout)
	}
	return NewHTTPSaltClient(rawURL, timeout, nil), nil
}

type HTTPSaltClient struct {
	url     string
	http    *http.Client
	timeout time.Duration
}

func NewHTTPSaltClient(url string, timeout time.Duration, hc *http.Client) *HTTPSaltClient {
	return &HTTPSaltClient{url: url, http: hc, timeout: timeout}
}

type saltRequest struct {
	JWT string `json:"jwt"`
}

type saltResponse struct {
	Salt string `json:"salt"`
}

func (c *HTTPSaltClient) GetSalt(ctx context.Context, jwt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var out saltResponse
	if err := netx.PostJSON(ctx, c.http, c.url, saltRequest{JWT: jwt}, &out); err != nil {
		return "", serviceError("get salt", err)
	}
	if strings.TrimSpace(out.Salt) == "" {
		return "", serviceError("get salt", ErrEmptySalt)
	}
	return out.Salt, nil
}

func (c *HTTPSaltClient) Close() error { return nil }

type GRPCSaltClient struct {
	target  string
	timeout time.Duration
	conn    *grpc.ClientConn
	client  saltrpc.SaltServiceClient
}

func NewGRPCSaltClient(target string, timeout time.Duration) (*GRPCSaltClient, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &GRPCSaltClient{
		target:  target,
		timeout: timeout,
		conn:    conn,
		client:  saltrpc.NewSaltServiceClient(conn),
	}, nil
}

func (c *GRPCSaltClient) GetSalt(ctx context.Context, jwt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.GetSalt(ctx, wrapperspb.String(jwt))
	if err != nil {
		return "", serviceError("get salt", mapError(err))
	}
	if strings.TrimSpace(resp.GetValue()) == "" {
		return "", serviceError("get salt", ErrEmptySalt)
	}
	return resp.GetValue(), nil
}

func (c *GRPCSaltClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.client.Ping(ctx, &emptypb.Empty{}); err != nil {
		return serviceError("ping", mapError(err))
	}
	return nil
}

func (c *GRPCSaltClient) Close() error {
	return c.conn.Close()
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
