package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/zklogin/internal/logging"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDHeader carries a caller-chosen request id. One is generated when
// absent.
const RequestIDHeader = "x-request-id"

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(RequestIDHeader); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}

// requestLogInterceptor tags every call with a request id, echoes it back in
// the response header and logs the outcome.
func (s *GRPCServer) requestLogInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	id := requestID(ctx)
	_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, id))

	start := time.Now()
	resp, err := handler(ctx, req)

	log := s.logger.With("request_id", id, "method", info.FullMethod, "code", status.Code(err).String(), "duration", time.Since(start))
	logResult(ctx, log, err)

	return resp, err
}

func logResult(ctx context.Context, log logging.Logger, err error) {
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return
	}
	log.Info(ctx, "request served")
}
