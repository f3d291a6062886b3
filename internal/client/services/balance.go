package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/zklogin/internal/client/client"
	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/logging"
	"golang.org/x/sync/errgroup"
)

// defaultPollConcurrency caps parallel balance queries per round.
const defaultPollConcurrency = 4

// DefaultPollInterval replaces a non-positive interval given to
// NewBalancePoller.
const DefaultPollInterval = 6 * time.Second

// AddressSource lists the addresses to poll. It is called at the start and
// again at the end of each round.
type AddressSource func() []string

// BalancePoller keeps a BalanceMap fresh for the known accounts.
type BalancePoller struct {
	ledger      client.Ledger
	balances    *models.BalanceMap
	addresses   AddressSource
	interval    time.Duration
	concurrency int
	log         logging.Logger
}

func NewBalancePoller(ledger client.Ledger, balances *models.BalanceMap, addresses AddressSource, interval time.Duration, log logging.Logger) *BalancePoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &BalancePoller{
		ledger:      ledger,
		balances:    balances,
		addresses:   addresses,
		interval:    interval,
		concurrency: defaultPollConcurrency,
		log:         log.With("module", "balances"),
	}
}

// Run polls immediately and then every interval until ctx is done.
func (p *BalancePoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll queries every address once and merges what came back. A failed
// query keeps the previous value for that address.
func (p *BalancePoller) Poll(ctx context.Context) {
	addrs := p.addresses()
	if len(addrs) == 0 {
		return
	}

	var (
		mu    sync.Mutex
		fresh = make(map[string]uint64, len(addrs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, addr := range addrs {
		g.Go(func() error {
			b, err := p.ledger.Balance(gctx, addr)
			if err != nil {
				p.log.Warn(ctx, "balance query failed", "addr", addr, "error", err)
				return nil
			}
			mu.Lock()
			fresh[addr] = b
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return
	}
	p.balances.Merge(stillKnown(fresh, p.addresses()))
}

// stillKnown drops results for addresses removed while the round was in
// flight, so a clear is not undone by a late merge.
func stillKnown(fresh map[string]uint64, current []string) map[string]uint64 {
	known := make(map[string]bool, len(current))
	for _, a := range current {
		known[a] = true
	}
	for addr := range fresh {
		if !known[addr] {
			delete(fresh, addr)
		}
	}
	return fresh
}

// RefreshOne reloads a single address right away.
func (p *BalancePoller) RefreshOne(ctx context.Context, addr string) error {
	b, err := p.ledger.Balance(ctx, addr)
	if err != nil {
		return err
	}
	p.balances.Set(addr, b)
	return nil
}
