package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/zklogin/internal/flagx"
	"github.com/dmitrijs2005/zklogin/internal/timex"
)

// JsonConfig is the on-disk shape of the client config. Pointer fields tell
// "absent" apart from zero values so a partial file keeps the defaults.
type JsonConfig struct {
	Network        *string `json:"network"`
	RPCURL         *string `json:"rpc_url"`
	FaucetURL      *string `json:"faucet_url"`
	SaltServiceURL *string `json:"salt_service_url"`
	ProverURL      *string `json:"prover_url"`
	RedirectURI    *string `json:"redirect_uri"`

	GoogleClientID   *string `json:"google_client_id"`
	TwitchClientID   *string `json:"twitch_client_id"`
	FacebookClientID *string `json:"facebook_client_id"`

	EpochWindow         *uint64         `json:"epoch_window"`
	BalancePollInterval *timex.Duration `json:"balance_poll_interval"`
	SaltTimeout         *timex.Duration `json:"salt_timeout"`
	ProofTimeout        *timex.Duration `json:"proof_timeout"`
	RPCTimeout          *timex.Duration `json:"rpc_timeout"`

	DatabasePath *string `json:"database_path"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics when the
// file cannot be read or parsed.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Network, jc.Network)
	setString(&cfg.RPCURL, jc.RPCURL)
	setString(&cfg.FaucetURL, jc.FaucetURL)
	setString(&cfg.SaltServiceURL, jc.SaltServiceURL)
	setString(&cfg.ProverURL, jc.ProverURL)
	setString(&cfg.RedirectURI, jc.RedirectURI)
	setString(&cfg.GoogleClientID, jc.GoogleClientID)
	setString(&cfg.TwitchClientID, jc.TwitchClientID)
	setString(&cfg.FacebookClientID, jc.FacebookClientID)
	setString(&cfg.DatabasePath, jc.DatabasePath)

	if jc.EpochWindow != nil {
		cfg.EpochWindow = *jc.EpochWindow
	}
	if jc.BalancePollInterval != nil {
		cfg.BalancePollInterval = jc.BalancePollInterval.Duration
	}
	if jc.SaltTimeout != nil {
		cfg.SaltTimeout = jc.SaltTimeout.Duration
	}
	if jc.ProofTimeout != nil {
		cfg.ProofTimeout = jc.ProofTimeout.Duration
	}
	if jc.RPCTimeout != nil {
		cfg.RPCTimeout = jc.RPCTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
