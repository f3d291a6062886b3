// Package cli provides the interactive zkLogin demo client.
//
// It wires configuration, the local session store, the external collaborators
// (ledger, salt service, prover, faucet) and an interactive REPL. Typical
// flow: `login google` opens the provider in a browser, the local callback
// listener completes the login when the browser comes back, and `send` signs
// transactions for a stored account. Balances refresh in the background.
//
// The App owns the in-memory account list and balance map; both are kept in
// step with the store after every mutation.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command set.
package cli
