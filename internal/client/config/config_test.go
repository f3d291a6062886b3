package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "devnet", c.Network)
	assert.Equal(t, "http://localhost:5002/get-salt", c.SaltServiceURL)
	assert.Equal(t, "http://localhost:1234", c.RedirectURI)
	assert.Equal(t, uint64(2), c.EpochWindow)
	assert.Equal(t, 6*time.Second, c.BalancePollInterval)
	assert.Equal(t, 12*time.Second, c.SaltTimeout)
	assert.Equal(t, 60*time.Second, c.ProofTimeout)
}

func TestLoadConfig_NoArgsGivesDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"zkclient"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *cfg)
}

func TestCallbackAddr(t *testing.T) {
	c := Config{RedirectURI: "http://127.0.0.1:4321/cb"}
	assert.Equal(t, "127.0.0.1:4321", c.CallbackAddr())

	c.RedirectURI = "::bad::"
	assert.Equal(t, "localhost:1234", c.CallbackAddr())
}

func TestLoadConfig_KeepsSubSecondJSONDurations(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"balance_poll_interval": "500ms",
		"salt_timeout":          "1500ms",
	})
	os.Args = []string{"zkclient", "-c", path}

	cfg := LoadConfig()
	assert.Equal(t, 500*time.Millisecond, cfg.BalancePollInterval)
	assert.Equal(t, 1500*time.Millisecond, cfg.SaltTimeout)
}

func TestLoadConfig_RejectsNonPositiveInterval(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"zkclient", "-i", "0"}
	require.Panics(t, func() { LoadConfig() })

	path := writeTempJSON(t, map[string]any{"proof_timeout": "0s"})
	os.Args = []string{"zkclient", "-c", path}
	require.Panics(t, func() { LoadConfig() })
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"sub-second poll", func(c *Config) { c.BalancePollInterval = 200 * time.Millisecond }, true},
		{"zero poll", func(c *Config) { c.BalancePollInterval = 0 }, false},
		{"negative salt timeout", func(c *Config) { c.SaltTimeout = -time.Second }, false},
		{"zero proof timeout", func(c *Config) { c.ProofTimeout = 0 }, false},
		{"zero rpc timeout", func(c *Config) { c.RPCTimeout = 0 }, false},
		{"zero epoch window", func(c *Config) { c.EpochWindow = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}
