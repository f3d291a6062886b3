package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/zklogin/internal/flagx"
)

// JsonConfig is the on-disk shape of the server config. Absent fields keep
// their defaults.
type JsonConfig struct {
	EndpointAddrHTTP *string `json:"endpoint_addr_http"`
	EndpointAddrGRPC *string `json:"endpoint_addr_grpc"`
	Salt             *string `json:"salt"`
}

// parseJson loads the file named by -c/-config, if any, into config. If the
// file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.Salt != nil {
		config.Salt = *c.Salt
	}
}
