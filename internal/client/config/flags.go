package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/zklogin/internal/flagx"
)

// parseFlags overlays Config with command-line flags. Only the flags listed
// here are looked at, so -c/-config stays with the JSON loader.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-n", "-r", "-s", "-p", "-u", "-i", "-d"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.Network, "n", cfg.Network, "network name")
	fs.StringVar(&cfg.RPCURL, "r", cfg.RPCURL, "ledger JSON-RPC URL")
	fs.StringVar(&cfg.SaltServiceURL, "s", cfg.SaltServiceURL, "salt service URL")
	fs.StringVar(&cfg.ProverURL, "p", cfg.ProverURL, "proving service URL")
	fs.StringVar(&cfg.RedirectURI, "u", cfg.RedirectURI, "OAuth redirect URI")
	pollInterval := fs.Int("i", int(cfg.BalancePollInterval.Seconds()), "balance poll interval (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "session database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -i only counts when given; otherwise a sub-second JSON interval would
	// be truncated to whole seconds here.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.BalancePollInterval = time.Duration(*pollInterval) * time.Second
		}
	})
}
