package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/zklogin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSalter struct {
	mu   sync.Mutex
	salt string
	seen []string
}

func (f *fixedSalter) Salt(_ context.Context, token string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, token)
	return f.salt
}

func newTestHandler(salt string) (http.Handler, *fixedSalter) {
	f := &fixedSalter{salt: salt}
	return NewHTTPServer("", logging.Discard(), f).Handler(), f
}

func TestGetSalt(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantBody  string
		wantToken []string
	}{
		{"with token", `{"jwt":"a.b.c"}`, http.StatusOK, `{"salt":"42"}` + "\n", []string{"a.b.c"}},
		{"empty object", `{}`, http.StatusOK, `{"salt":"42"}` + "\n", []string{""}},
		{"empty body", ``, http.StatusOK, `{"salt":"42"}` + "\n", []string{""}},
		{"non-string token", `{"jwt":123}`, http.StatusOK, `{"salt":"42"}` + "\n", []string{""}},
		{"extra fields", `{"jwt":"a.b.c","aud":["x"]}`, http.StatusOK, `{"salt":"42"}` + "\n", []string{"a.b.c"}},
		{"array body", `[]`, http.StatusOK, `{"salt":"42"}` + "\n", []string{""}},
		{"malformed", `{"jwt":`, http.StatusBadRequest, "invalid JSON body\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, f := newTestHandler("42")

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/get-salt", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
			assert.Equal(t, tt.wantToken, f.seen)
		})
	}
}

func TestGetSalt_WrongMethod(t *testing.T) {
	h, _ := newTestHandler("42")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/get-salt", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestPing(t *testing.T) {
	h, _ := newTestHandler("42")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong\n", rr.Body.String())
}

func TestRequestID(t *testing.T) {
	h, _ := newTestHandler("42")

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "req-1", rr.Header().Get(RequestIDHeader))

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	srv := NewHTTPServer("127.0.0.1:0", logging.Discard(), &fixedSalter{salt: "1"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	srv := NewHTTPServer("127.0.0.1:99999", logging.Discard(), &fixedSalter{})
	require.Error(t, srv.Run(context.Background()))
}
