// Package grpc exposes the salt stub over gRPC using the hand-written
// saltrpc service descriptor.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/zklogin/internal/logging"
	"github.com/dmitrijs2005/zklogin/internal/saltrpc"
	"google.golang.org/grpc"
)

// Salter hands out salts. Implemented by *salts.Service.
type Salter interface {
	Salt(ctx context.Context, token string) string
}

type GRPCServer struct {
	address string
	salts   Salter
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, s Salter) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		salts:   s,
	}
}

// Run listens on the configured address and serves until ctx is cancelled,
// then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on a caller-provided listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestLogInterceptor))
	saltrpc.RegisterSaltServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
