// Package config loads runtime configuration for the zkLogin demo client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJson).
//  3. Command-line flags (see parseFlags).
//
// Supported flags
//
//	-n string   network name (devnet, testnet)
//	-r string   ledger JSON-RPC URL
//	-s string   salt service URL (http(s):// or grpc://)
//	-p string   proving service URL
//	-u string   OAuth redirect URI
//	-i int      balance poll interval (seconds)
//	-d string   local session database path
//
// # JSON schema
//
// Only keys that are present override the defaults. Durations accept "6s" or
// integer nanoseconds:
//
//	{
//	  "network": "devnet",
//	  "rpc_url": "https://fullnode.devnet.sui.io:443",
//	  "salt_service_url": "grpc://localhost:5003",
//	  "google_client_id": "...apps.googleusercontent.com",
//	  "epoch_window": 2,
//	  "proof_timeout": "90s"
//	}
package config
