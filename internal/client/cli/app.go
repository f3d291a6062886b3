package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/dmitrijs2005/zklogin/internal/client/callback"
	"github.com/dmitrijs2005/zklogin/internal/client/client"
	"github.com/dmitrijs2005/zklogin/internal/client/config"
	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/client/oauth"
	"github.com/dmitrijs2005/zklogin/internal/client/services"
	"github.com/dmitrijs2005/zklogin/internal/client/session"
	"github.com/dmitrijs2005/zklogin/internal/logging"
)

type balancePoller interface {
	Run(ctx context.Context)
	Poll(ctx context.Context)
	RefreshOne(ctx context.Context, addr string) error
}

type listener interface {
	Run(ctx context.Context) error
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	store     session.Store
	login     services.LoginService
	submitter services.Submitter
	poller    balancePoller
	faucet    client.Faucet
	callback  listener
	closers   []func() error

	mu       sync.RWMutex
	accounts []models.AccountRecord
	balances *models.BalanceMap

	in  *bufio.Scanner
	out io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	ledger, err := client.DialLedger(ctx, c.RPCURL, c.RPCTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	salt, err := client.NewSaltService(c.SaltServiceURL, c.SaltTimeout)
	if err != nil {
		ledger.Close()
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:   c,
		logger:   logger,
		store:    session.NewSQLiteStore(db, logger),
		faucet:   client.NewHTTPFaucet(c.FaucetURL, c.RPCTimeout, nil),
		balances: models.NewBalanceMap(),
		in:       bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
	}
	a.closers = []func() error{salt.Close, func() error { ledger.Close(); return nil }, db.Close}

	poller := services.NewBalancePoller(ledger, a.balances, a.addresses, c.BalancePollInterval, logger)
	a.poller = poller
	a.submitter = services.NewSubmitter(ledger, poller, logger)
	a.login = services.NewLoginService(
		services.LoginConfig{
			EpochWindow: c.EpochWindow,
			RedirectURI: c.RedirectURI,
			ClientIDs: oauth.ClientIDs{
				models.ProviderGoogle:   c.GoogleClientID,
				models.ProviderTwitch:   c.TwitchClientID,
				models.ProviderFacebook: c.FacebookClientID,
			},
		},
		a.store,
		ledger,
		salt,
		client.NewHTTPProver(c.ProverURL, c.ProofTimeout, nil),
		&browserNavigator{w: a.out, open: openBrowser},
		logger,
	)
	a.callback = callback.NewServer(c.CallbackAddr(), a.login, a.onLoginResult, logger)

	return a, nil
}

// Run loads the cached accounts, starts the callback listener and the
// balance poller, and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer a.close()

	if err := a.reloadAccounts(ctx); err != nil {
		a.logger.Error(ctx, "failed to load accounts", "error", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.poller.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.callback.Run(ctx); err != nil {
			a.logger.Error(ctx, "callback listener stopped", "error", err)
		}
	}()

	printlnFn(fmt.Sprintf("zkLogin demo on %s (type 'help' for commands)", a.config.Network))
	runREPL(ctx, a, a.getStatus, a.in)

	cancel()
	wg.Wait()
}

func (a *App) close() {
	for _, c := range a.closers {
		_ = c()
	}
}

func (a *App) getStatus() string {
	a.mu.RLock()
	n := len(a.accounts)
	a.mu.RUnlock()
	return fmt.Sprintf("(%s, %d accounts)", a.config.Network, n)
}

// reloadAccounts replaces the in-memory list with what the store holds.
func (a *App) reloadAccounts(ctx context.Context) error {
	list, err := a.store.LoadAccounts(ctx)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.accounts = list
	a.mu.Unlock()
	return nil
}

func (a *App) snapshot() []models.AccountRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]models.AccountRecord(nil), a.accounts...)
}

func (a *App) addresses() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]string, 0, len(a.accounts))
	for _, acct := range a.accounts {
		out = append(out, acct.UserAddr)
	}
	return out
}

// onLoginResult runs after every completion attempt that carried a token,
// whether it came through the callback listener or the complete command.
func (a *App) onLoginResult(acct *models.AccountRecord, err error) {
	ctx := context.Background()
	if err != nil {
		printlnFn("Login failed:", err)
		return
	}

	if err := a.reloadAccounts(ctx); err != nil {
		a.logger.Error(ctx, "failed to reload accounts", "error", err)
	}
	printlnFn(fmt.Sprintf("Logged in with %s as %s", acct.Provider, acct.UserAddr))

	go func() {
		if err := a.poller.RefreshOne(ctx, acct.UserAddr); err != nil {
			a.logger.Warn(ctx, "balance refresh failed", "addr", acct.UserAddr, "error", err)
		}
	}()
}
