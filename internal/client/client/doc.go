// Package client holds the adapters for everything the zkLogin client talks
// to but does not own.
//
// # Collaborators
//
//   - SaltService: HTTPSaltClient (POST {jwt} -> {salt}) or GRPCSaltClient,
//     chosen by NewSaltService from the URL scheme.
//   - Prover: HTTPProver, POSTs the proof request and returns the raw JSON.
//   - Ledger: RPCLedger, JSON-RPC 2.0 against a full node for epochs,
//     balances, transaction building and execution.
//   - Faucet: HTTPFaucet, asks a devnet faucet for gas.
//
// Local persistence bootstrap lives here too (InitDatabase, RunMigrations).
//
// # Errors
//
// Every transport failure is reported wrapped around common.ErrServiceFailure,
// with the underlying cause still reachable through errors.Is / errors.As.
// Each call is bounded by the timeout given at construction.
package client
