package main

import (
	"context"
	"embed"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/config"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/external"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/horizon"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/remote"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/wallet"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.SetDefault(config.LoadLogging().NewLogger(os.Stderr))
	cfg := config.Load()

	app := &cli.App{
		Name:  "wallet",
		Usage: "Stellar wallet balances, USD valuation and transfer limits",
		Commands: []*cli.Command{
			serveCommand(cfg),
			balancesCommand(cfg),
			exportCommand(cfg),
		},
		DefaultCommand: "serve",
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatalf("wallet: %v", err)
	}
}

type observer interface {
	remote.Observer
	wallet.EnrichObserver
}

// newWalletService wires the ledger and price clients into a wallet.Service.
// o may be nil.
func newWalletService(cfg config.Config, o observer) *wallet.Service {
	var opts []remote.Option
	var observers []wallet.EnrichObserver
	if o != nil {
		opts = append(opts, remote.WithObserver(o))
		observers = append(observers, o)
	}

	horizonClient := horizon.NewClient(cfg.HorizonURL, opts...)
	ticker := external.NewTickerClient(cfg.TickerURL, cfg.TickerSymbol, opts...)

	return wallet.NewService(horizonClient, ticker, wallet.Config{
		Reserve:       cfg.Reserve(),
		PaymentsLimit: cfg.PaymentsPageLimit,
		AssetsLimit:   cfg.AssetsPageLimit,
	}, observers...)
}
