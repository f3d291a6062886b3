package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Login(ctx context.Context, args []string) error
	Complete(ctx context.Context) error
	Accounts(ctx context.Context) error
	Balances(ctx context.Context) error
	Send(ctx context.Context, args []string) error
	Faucet(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
}

const helpText = `Available commands:
  login <provider>             start a login (google, twitch, facebook)
  complete                     finish a login from a pasted redirect URL
  accounts | ls                list accounts
  balances                     refresh and show balances
  send <n> [to] [amount]       send SUI from account n (default: 0.001 SUI to itself)
  faucet <n>                   request test SUI for account n
  clear                        forget every account and pending login
  exit | quit                  leave the program`

// runREPL starts a simple read–eval–print loop for the zkLogin CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, when ctx is done, or when
// the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("zk %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "login":
			_ = a.Login(ctx, args)

		case "complete":
			_ = a.Complete(ctx)

		case "accounts", "ls":
			_ = a.Accounts(ctx)

		case "balances":
			_ = a.Balances(ctx)

		case "send":
			_ = a.Send(ctx, args)

		case "faucet":
			_ = a.Faucet(ctx, args)

		case "clear":
			_ = a.Clear(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
