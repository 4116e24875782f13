package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/portfolio-assistant/server"
	"github.com/google/subcommands"
)

// serveCmd runs the webhook and api server.
type serveCmd struct {
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the voice platform webhooks and the trades api" }
func (*serveCmd) Usage() string {
	return `pca serve [-port <port>]

  Serves the webhooks and the REST api until interrupted.
  The configuration is read from the environment, see the README.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "port to listen on, overrides PCA_PORT")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, err := setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if c.port != 0 {
		cfg.Port = c.port
	}

	trades, err := openTrades(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to open trades")
		return subcommands.ExitFailure
	}
	defer trades.Close()

	clock := cfg.Clock()
	log.Info().
		Str("store", cfg.StoreDriver).
		Str("account", cfg.Account).
		Stringer("anchor", clock.Anchor()).
		Int("offset", clock.Offset()).
		Msg("demo clock ready")

	srv := server.New(server.Config{
		Port:        cfg.Port,
		Log:         log,
		Trades:      trades,
		Clock:       clock,
		Account:     cfg.Account,
		QueryPaths:  cfg.QueryPaths,
		CORSOrigins: cfg.CORSOrigins,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
			return subcommands.ExitFailure
		}
	}
	log.Info().Msg("server stopped")
	return subcommands.ExitSuccess
}
