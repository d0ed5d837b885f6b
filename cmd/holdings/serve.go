package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/holdings/internal/holdings/handlers"
	"github.com/gartstein/holdings/internal/holdings/navigation"
	"github.com/gartstein/holdings/internal/holdings/payment"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type serveCmd struct{}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the HTTP server until interrupted" }
func (*serveCmd) Usage() string {
	return `holdings [-config <path>] serve

  Serves the catalog, the navigation session and health routes on HTTP_PORT.
  SIGINT or SIGTERM drains in-flight requests and exits.
`
}

func (*serveCmd) SetFlags(*flag.FlagSet) {}

func (*serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	dispatcher := payment.NewDispatcher(
		payment.LogOpener{Logger: a.logger},
		payment.LogNotifier{Logger: a.logger},
		a.cfg.PaymentFallbackDelay,
		a.logger,
	)
	router := handlers.NewRouter(
		handlers.NewCatalogHandler(a.repo, a.logger),
		handlers.NewViewHandler(navigation.NewNavigator(a.repo, a.logger), dispatcher, a.logger),
		handlers.NewHealthHandler(a.substrate),
		a.logger,
	)

	server := handlers.NewServer(a.cfg.HTTPPort, router, a.logger)
	if err := server.Start(); err != nil {
		a.logger.Error("Failed to start server", zap.Error(err))
		return subcommands.ExitFailure
	}

	waitForShutdown(server, a.logger)
	return subcommands.ExitSuccess
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down the server.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Server stopped properly")
}
