package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the zkLogin demo client.
//
// Endpoints:
//   - RPCURL: ledger full node JSON-RPC endpoint.
//   - FaucetURL: devnet/testnet faucet.
//   - SaltServiceURL: salt stub; a grpc://host:port URL selects gRPC.
//   - ProverURL: zero-knowledge proving service.
//   - RedirectURI: where providers send the browser back; the callback
//     listener binds to its host:port.
//
// Timeouts bound every call to an external collaborator.
type Config struct {
	Network        string
	RPCURL         string
	FaucetURL      string
	SaltServiceURL string
	ProverURL      string
	RedirectURI    string

	GoogleClientID   string
	TwitchClientID   string
	FacebookClientID string

	EpochWindow         uint64
	BalancePollInterval time.Duration
	SaltTimeout         time.Duration
	ProofTimeout        time.Duration
	RPCTimeout          time.Duration

	DatabasePath string
}

// LoadDefaults populates c with devnet defaults.
func (c *Config) LoadDefaults() {
	c.Network = "devnet"
	c.RPCURL = "https://fullnode.devnet.sui.io:443"
	c.FaucetURL = "https://faucet.devnet.sui.io/gas"
	c.SaltServiceURL = "http://localhost:5002/get-salt"
	c.ProverURL = "https://prover-dev.mystenlabs.com/v1"
	c.RedirectURI = "http://localhost:1234"

	c.GoogleClientID = "139697148457-3s1nc6h8an06f84do363lbc6j61i0vfo.apps.googleusercontent.com"
	c.TwitchClientID = ""
	c.FacebookClientID = ""

	c.EpochWindow = 2
	c.BalancePollInterval = 6 * time.Second
	c.SaltTimeout = 12 * time.Second
	c.ProofTimeout = 60 * time.Second
	c.RPCTimeout = 15 * time.Second

	c.DatabasePath = "zklogin.db"
}

// CallbackAddr is the listen address derived from RedirectURI.
func (c *Config) CallbackAddr() string {
	u, err := url.Parse(c.RedirectURI)
	if err != nil || u.Host == "" {
		return "localhost:1234"
	}
	return u.Host
}

// Validate rejects settings the client cannot run with: every interval and
// timeout must be positive and the epoch window non-zero.
func (c *Config) Validate() error {
	durations := []struct {
		name string
		v    time.Duration
	}{
		{"balance poll interval", c.BalancePollInterval},
		{"salt timeout", c.SaltTimeout},
		{"proof timeout", c.ProofTimeout},
		{"rpc timeout", c.RPCTimeout},
	}
	for _, d := range durations {
		if d.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidConfig, d.name, d.v)
		}
	}
	if c.EpochWindow == 0 {
		return fmt.Errorf("%w: epoch window must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig applies defaults, then the JSON file (if any), then flags.
// Later sources take precedence. Like a malformed file or flag, an invalid
// result panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}
