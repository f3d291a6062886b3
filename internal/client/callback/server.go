// Package callback is the local redirect target. The provider sends the
// browser to the redirect URI with the id_token in the URL fragment, which
// never reaches a server; the page served here posts location.href back so
// the login can be completed, then rewrites the address bar with the
// cleaned URL it receives.
package callback

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"mime"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/client/services"
	"github.com/dmitrijs2005/zklogin/internal/common"
	"github.com/dmitrijs2005/zklogin/internal/logging"
)

//go:embed page.html
var page []byte

const maxBody = 64 << 10

// Completer finishes a login for a page load.
type Completer interface {
	Complete(ctx context.Context, page services.Page) (*models.AccountRecord, error)
}

// ResultFunc is told about every completion attempt that carried a token.
type ResultFunc func(acct *models.AccountRecord, err error)

type completeRequest struct {
	Href string `json:"href"`
}

type completeResponse struct {
	CleanURL string `json:"cleanUrl,omitempty"`
	Address  string `json:"address,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Server struct {
	address   string
	completer Completer
	onResult  ResultFunc
	logger    logging.Logger
}

// NewServer returns a listener for address. onResult may be nil.
func NewServer(address string, c Completer, onResult ResultFunc, l logging.Logger) *Server {
	return &Server{
		address:   address,
		completer: c,
		onResult:  onResult,
		logger:    l.With("module", "callback"),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handlePage)
	mux.HandleFunc("POST /complete", s.handleComplete)
	return mux
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(page)
}

// sameOrigin reports whether r came from the page this server serves.
// Requests without an Origin header come from non-browser clients.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || origin == "http://"+r.Host
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	// A JSON body forces a CORS preflight, which this server never answers,
	// so other sites cannot spend the pending setup with a simple form post.
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		http.Error(w, "content type must be application/json", http.StatusUnsupportedMediaType)
		return
	}
	if !sameOrigin(r) {
		s.logger.Warn(r.Context(), "cross-origin completion rejected", "origin", r.Header.Get("Origin"))
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req completeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var resp completeResponse
	acct, err := s.completer.Complete(r.Context(), services.Page{
		Href:       req.Href,
		ReplaceURL: func(clean string) { resp.CleanURL = clean },
	})

	switch {
	case err == nil:
		resp.Address = acct.UserAddr
	case errors.Is(err, common.ErrUserAbsent):
		// nothing to report
	default:
		resp.Error = err.Error()
	}

	if s.onResult != nil && !errors.Is(err, common.ErrUserAbsent) {
		s.onResult(acct, err)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping callback listener...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting callback listener", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
