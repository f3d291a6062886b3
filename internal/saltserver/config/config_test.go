package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"saltserver"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()
	assert.Equal(t, ":5002", c.EndpointAddrHTTP)
	assert.Equal(t, ":5003", c.EndpointAddrGRPC)
	assert.Equal(t, "129390038577185583942388216820280642146", c.Salt)
}

func TestParseFlags(t *testing.T) {
	withArgs(t, "-a", "127.0.0.1:8080", "-g", "", "-s", "42", "-c", "ignored.json")

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	want := &Config{EndpointAddrHTTP: "127.0.0.1:8080", EndpointAddrGRPC: "", Salt: "42"}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFlags_BadValuePanics(t *testing.T) {
	withArgs(t, "-a")
	require.Panics(t, func() { parseFlags(&Config{}) })
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"endpoint_addr_http":":7000","salt":"7"}`), 0o600))
	withArgs(t, "-config", path, "-s", "8")

	c := LoadConfig()
	assert.Equal(t, ":7000", c.EndpointAddrHTTP)
	assert.Equal(t, ":5003", c.EndpointAddrGRPC)
	assert.Equal(t, "8", c.Salt)
}

func TestParseJson_Errors(t *testing.T) {
	withArgs(t, "-c", filepath.Join(t.TempDir(), "missing.json"))
	require.Panics(t, func() { parseJson(&Config{}) })

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
	withArgs(t, "-c", bad)
	require.Panics(t, func() { parseJson(&Config{}) })
}
