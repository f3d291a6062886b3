package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/zklogin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5002")
//	-g string   gRPC bind address (e.g., ":5003"); empty disables gRPC
//	-s string   salt value (decimal)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, so -c/-config stays with the JSON loader.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.Salt, "s", config.Salt, "salt value")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
