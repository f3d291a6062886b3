package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/client/services"
	"github.com/dmitrijs2005/zklogin/internal/common"
)

const (
	// defaultGasBudget is the gas budget of a transfer, in MIST.
	defaultGasBudget uint64 = 10_000_000
	// defaultSendAmount is sent when the send command gets no amount, in MIST.
	defaultSendAmount uint64 = 1_000_000
)

var errUsage = errors.New("usage")

// getRedirectURL is an indirection used to facilitate testing.
var getRedirectURL = GetRedirectURL

// account resolves a 1-based index as shown by the accounts command.
func (a *App) account(arg string) (models.AccountRecord, error) {
	list := a.snapshot()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(list) {
		return models.AccountRecord{}, fmt.Errorf("no account #%s (have %d)", arg, len(list))
	}
	return list[n-1], nil
}

// Login stores a fresh setup record and sends the browser to the provider.
func (a *App) Login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: login <google|twitch|facebook>")
		return errUsage
	}
	p, err := models.ParseProvider(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if _, err := a.login.BeginLogin(ctx, p); err != nil {
		printlnFn("Login could not start:", err)
		return err
	}
	printlnFn("Waiting for the provider to redirect back. If the browser cannot reach this machine, run 'complete'.")
	return nil
}

// Complete finishes a login from a redirect URL pasted by the user.
func (a *App) Complete(ctx context.Context) error {
	href, err := getRedirectURL(a.in, a.out)
	if err != nil {
		return err
	}

	var acct *models.AccountRecord
	err = withSpinner(a.out, "requesting proof", func() error {
		var err error
		acct, err = a.login.Complete(ctx, services.Page{Href: href})
		return err
	})
	if errors.Is(err, common.ErrUserAbsent) {
		printlnFn("That URL carries no id_token.")
		return err
	}

	a.onLoginResult(acct, err)
	return err
}

// Accounts prints the stored accounts, most recent first.
func (a *App) Accounts(ctx context.Context) error {
	list := a.snapshot()
	if len(list) == 0 {
		printlnFn("No accounts yet. Use 'login <provider>'.")
		return nil
	}
	for i, acct := range list {
		printlnFn(fmt.Sprintf("[%d] %-8s %s  %s  (sub %s, valid until epoch %d)",
			i+1, acct.Provider, acct.UserAddr, a.balanceText(acct.UserAddr), acct.Sub, acct.MaxEpoch))
	}
	return nil
}

func (a *App) balanceText(addr string) string {
	mist, ok := a.balances.Get(addr)
	if !ok {
		return "loading"
	}
	return formatSUI(mist)
}

// Balances refreshes every balance now and prints them.
func (a *App) Balances(ctx context.Context) error {
	a.poller.Poll(ctx)
	for i, acct := range a.snapshot() {
		printlnFn(fmt.Sprintf("[%d] %s  %s", i+1, acct.UserAddr, a.balanceText(acct.UserAddr)))
	}
	return nil
}

// Send transfers SUI from account #n: send <n> [recipient] [amount].
// Recipient defaults to the account itself.
func (a *App) Send(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		printlnFn("Usage: send <n> [recipient] [amount in SUI]")
		return errUsage
	}
	acct, err := a.account(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	intent := models.TxIntent{
		Recipient: acct.UserAddr,
		Amount:    defaultSendAmount,
		GasBudget: defaultGasBudget,
	}
	if len(args) > 1 {
		intent.Recipient = args[1]
	}
	if len(args) > 2 {
		if intent.Amount, err = parseSUI(args[2]); err != nil {
			printlnFn(err.Error())
			return err
		}
	}

	var receipt *models.Receipt
	err = withSpinner(a.out, "sending transaction", func() error {
		var err error
		receipt, err = a.submitter.Submit(ctx, acct, intent)
		return err
	})
	if err != nil {
		printlnFn("Transaction failed:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Transaction %s: %s", receipt.Status, receipt.Digest))
	return nil
}

// Faucet asks the network faucet to fund account #n.
func (a *App) Faucet(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: faucet <n>")
		return errUsage
	}
	acct, err := a.account(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.faucet.RequestGas(ctx, acct.UserAddr); err != nil {
		printlnFn("Faucet request failed:", err)
		return err
	}
	printlnFn("Faucet request sent for", acct.UserAddr)
	return nil
}

// Clear wipes the session store and the in-memory caches.
func (a *App) Clear(ctx context.Context) error {
	if err := a.store.ClearAll(ctx); err != nil {
		printlnFn("Clear failed:", err)
		return err
	}
	a.mu.Lock()
	a.accounts = nil
	a.mu.Unlock()
	a.balances.Reset()
	printlnFn("State cleared.")
	return nil
}
