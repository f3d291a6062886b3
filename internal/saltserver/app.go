// Package saltserver runs the salt stub: one fixed salt served over HTTP and,
// optionally, gRPC. Both listeners share a lifetime; if either fails to
// start, the other is stopped too.
package saltserver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/zklogin/internal/logging"
	"github.com/dmitrijs2005/zklogin/internal/saltserver/config"
	"github.com/dmitrijs2005/zklogin/internal/saltserver/salts"

	gs "github.com/dmitrijs2005/zklogin/internal/saltserver/grpc"
	hs "github.com/dmitrijs2005/zklogin/internal/saltserver/httpserver"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	servers []runner
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	return newApp(c, logger)
}

func newApp(c *config.Config, logger logging.Logger) (*App, error) {
	svc, err := salts.NewService(c.Salt, logger)
	if err != nil {
		return nil, fmt.Errorf("salt service init error: %w", err)
	}

	servers := []runner{hs.NewHTTPServer(c.EndpointAddrHTTP, logger, svc)}
	if c.EndpointAddrGRPC != "" {
		servers = append(servers, gs.NewGRPCServer(c.EndpointAddrGRPC, logger, svc))
	}

	return &App{config: c, logger: logger, servers: servers}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, s runner) {
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a termination signal arrives, or a
// server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup
	for _, s := range app.servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.start(ctx, cancelFunc, s)
		}()
	}

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")
}
