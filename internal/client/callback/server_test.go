package callback

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/client/services"
	"github.com/dmitrijs2005/zklogin/internal/common"
	"github.com/dmitrijs2005/zklogin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	acct    *models.AccountRecord
	err     error
	clean   string
	gotHref string
}

func (f *fakeCompleter) Complete(_ context.Context, p services.Page) (*models.AccountRecord, error) {
	f.gotHref = p.Href
	if f.clean != "" && p.ReplaceURL != nil {
		p.ReplaceURL(f.clean)
	}
	return f.acct, f.err
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, completeResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/complete", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp completeResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	}
	return rec, resp
}

func TestPage(t *testing.T) {
	s := NewServer("", &fakeCompleter{}, nil, logging.Discard())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "history.replaceState")
	assert.Contains(t, rec.Body.String(), "/complete")
}

func TestComplete_Success(t *testing.T) {
	fc := &fakeCompleter{acct: &models.AccountRecord{UserAddr: "0xabc"}, clean: "http://localhost:1234/"}
	var gotAcct *models.AccountRecord
	var gotErr error
	s := NewServer("", fc, func(a *models.AccountRecord, err error) { gotAcct, gotErr = a, err }, logging.Discard())

	rec, resp := post(t, s.Handler(), `{"href":"http://localhost:1234/#id_token=x"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:1234/#id_token=x", fc.gotHref)
	assert.Equal(t, completeResponse{CleanURL: "http://localhost:1234/", Address: "0xabc"}, resp)
	assert.NoError(t, gotErr)
	assert.Equal(t, "0xabc", gotAcct.UserAddr)
}

func TestComplete_Failure(t *testing.T) {
	fc := &fakeCompleter{err: common.ErrDuplicateAccount, clean: "http://localhost:1234/"}
	calls := 0
	s := NewServer("", fc, func(*models.AccountRecord, error) { calls++ }, logging.Discard())

	_, resp := post(t, s.Handler(), `{"href":"http://localhost:1234/#id_token=x"}`)
	assert.Equal(t, "http://localhost:1234/", resp.CleanURL)
	assert.Equal(t, common.ErrDuplicateAccount.Error(), resp.Error)
	assert.Empty(t, resp.Address)
	assert.Equal(t, 1, calls)
}

func TestComplete_UserAbsentIsSilent(t *testing.T) {
	calls := 0
	s := NewServer("", &fakeCompleter{err: common.ErrUserAbsent}, func(*models.AccountRecord, error) { calls++ }, logging.Discard())

	_, resp := post(t, s.Handler(), `{"href":"http://localhost:1234/"}`)
	assert.Equal(t, completeResponse{}, resp)
	assert.Zero(t, calls)
}

func TestComplete_BadBody(t *testing.T) {
	s := NewServer("", &fakeCompleter{}, nil, logging.Discard())
	rec, _ := post(t, s.Handler(), `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer("", &fakeCompleter{}, nil, logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + lis.Addr().String() + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestComplete_RejectsSimpleCrossSiteRequests(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		origin      string
		want        int
	}{
		{"form post", "application/x-www-form-urlencoded", "", http.StatusUnsupportedMediaType},
		{"text plain", "text/plain", "http://evil.example", http.StatusUnsupportedMediaType},
		{"no content type", "", "", http.StatusUnsupportedMediaType},
		{"foreign origin", "application/json", "http://evil.example", http.StatusForbidden},
		{"own origin", "application/json; charset=utf-8", "http://example.com", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCompleter{err: common.ErrUserAbsent}
			s := NewServer("", fc, nil, logging.Discard())

			req := httptest.NewRequest(http.MethodPost, "/complete", strings.NewReader(`{"href":"http://x/#id_token=t"}`))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want != http.StatusOK {
				assert.Empty(t, fc.gotHref, "completer must not run")
			}
		})
	}
}
