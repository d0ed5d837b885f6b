package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/gartstein/holdings/internal/holdings/config"
	"github.com/gartstein/holdings/internal/holdings/controller"
	"github.com/gartstein/holdings/internal/holdings/db"
	"github.com/gartstein/holdings/internal/holdings/events"
	"github.com/gartstein/holdings/internal/holdings/store"
	"go.uber.org/zap"
)

var configPath = flag.String("config", config.DefaultPath, "Path to the YAML configuration file")

type substrate interface {
	store.Substrate
	Ping(ctx context.Context) error
	Close() error
}

type producer interface {
	Produce(event events.Event)
	Close()
}

// app holds everything a command needs, opened from the configuration.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	substrate substrate
	producer  producer
	repo      *controller.Repository
}

// initLogger builds a zap production logger, or a development one on request.
func initLogger(development bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openApp loads the config, opens the store and loads both collections.
// The change feed is only connected when withEvents is set.
func openApp(ctx context.Context, withEvents bool) (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := initLogger(cfg.LogDevelopment)

	sub, err := openSubstrate(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	var p producer = events.NewNoOpProducer()
	if withEvents && cfg.KafkaEnabled {
		kp, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
		if err != nil {
			_ = sub.Close()
			return nil, fmt.Errorf("failed to initialize Kafka producer: %w", err)
		}
		p = kp
	}

	st := store.New(sub, logger)
	favorites := controller.NewFavorites(ctx, st, p, logger)
	repo := controller.NewRepository(ctx, st, favorites, p, logger, cfg.RepairFavoritesOnLoad)

	return &app{
		cfg:       cfg,
		logger:    logger,
		substrate: sub,
		producer:  p,
		repo:      repo,
	}, nil
}

func openSubstrate(cfg *config.Config) (substrate, error) {
	if cfg.StoreDriver == config.StoreMemory {
		return store.NewMemory(), nil
	}
	return db.NewKV(cfg.Database())
}

func (a *app) Close() {
	a.producer.Close()
	if err := a.substrate.Close(); err != nil {
		a.logger.Error("failed to close store", zap.Error(err))
	}
	_ = a.logger.Sync()
}
