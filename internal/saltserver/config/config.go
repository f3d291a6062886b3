// Package config handles configuration for the salt server, including
// defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the salt server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for POST /get-salt and GET /ping.
//   - EndpointAddrGRPC: bind address for the gRPC SaltService.
//   - Salt: the decimal salt handed to every caller.
type Config struct {
	EndpointAddrHTTP string
	EndpointAddrGRPC string
	Salt             string
}

// LoadDefaults populates Config with development defaults. The salt is the
// well-known demo value; never reuse it for real users.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5002"
	c.EndpointAddrGRPC = ":5003"
	c.Salt = "129390038577185583942388216820280642146"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
