package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/holdings/internal/holdings/config"
	"github.com/gartstein/holdings/internal/holdings/events"
	"github.com/google/subcommands"
)

type watchCmd struct {
	out   io.Writer
	group string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "print change feed events as they arrive" }
func (*watchCmd) Usage() string {
	return `holdings [-config <path>] watch [-group <id>]

  Follows TOPIC on KAFKA_BROKERS and prints one JSON event per line until
  interrupted. Requires KAFKA_ENABLED.
`
}

func (w *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&w.group, "group", "holdings-watch", "Kafka consumer group id.")
}

func (w *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if !cfg.KafkaEnabled {
		fmt.Fprintln(os.Stderr, "change feed is disabled, set KAFKA_ENABLED")
		return subcommands.ExitFailure
	}
	logger := initLogger(cfg.LogDevelopment)
	defer func() { _ = logger.Sync() }()

	consumer := events.NewConsumer(cfg.KafkaBrokers, w.group, cfg.Topic, logger)
	defer consumer.Close()

	enc := json.NewEncoder(w.out)
	consumer.RegisterHandler(func(_ context.Context, ev events.Event) error {
		return enc.Encode(ev)
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	consumer.Run(ctx)
	return subcommands.ExitSuccess
}
