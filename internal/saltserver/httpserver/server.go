// Package httpserver serves the salt stub's HTTP API:
//
//	POST /get-salt   {"jwt": "..."} -> {"salt": "..."}
//	GET  /ping       "pong\n"
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/zklogin/internal/logging"
	"github.com/google/uuid"
)

const maxBody = 100 << 10

// RequestIDHeader is echoed back on every response; a fresh id is generated
// when the request does not carry one.
const RequestIDHeader = "X-Request-Id"

// Salter hands out salts. Implemented by *salts.Service.
type Salter interface {
	Salt(ctx context.Context, token string) string
}

type saltResponse struct {
	Salt string `json:"salt"`
}

type HTTPServer struct {
	address string
	salts   Salter
	logger  logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, s Salter) *HTTPServer {
	return &HTTPServer{
		address: a,
		salts:   s,
		logger:  l.With("module", "http_server"),
	}
}

func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /get-salt", s.handleGetSalt)
	mux.HandleFunc("GET /ping", s.handlePing)
	return s.withRequestLog(mux)
}

// handleGetSalt answers any well-formed JSON body. The token is optional and
// only used for logging, so a missing or non-string "jwt" still gets a salt.
func (s *HTTPServer) handleGetSalt(w http.ResponseWriter, r *http.Request) {
	var body any
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&body)
	if err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(saltResponse{Salt: s.salts.Salt(r.Context(), tokenOf(body))})
}

func tokenOf(body any) string {
	obj, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	token, _ := obj["jwt"].(string)
	return token
}

func (s *HTTPServer) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "pong\n")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *HTTPServer) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request served",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
