// Package config loads the service settings from a flat YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gartstein/holdings/internal/holdings/db"
	e "github.com/gartstein/holdings/internal/holdings/errors"
	"gopkg.in/yaml.v3"
)

// StoreMemory keeps both collections in process memory only.
const StoreMemory = "memory"

// DefaultPath is resolved against the working directory.
var DefaultPath = filepath.Join("internal", "holdings", "config", "config.yaml")

type Config struct {
	HTTPPort int `yaml:"HTTP_PORT"`

	StoreDriver string `yaml:"STORE_DRIVER"`
	SQLitePath  string `yaml:"SQLITE_PATH"`
	DBHost      string `yaml:"DB_HOST"`
	DBPort      int    `yaml:"DB_PORT"`
	DBUser      string `yaml:"DB_USER"`
	DBPassword  string `yaml:"DB_PASSWORD"`
	DBName      string `yaml:"DB_NAME"`
	DBSSLMode   string `yaml:"DB_SSLMODE"`

	KafkaEnabled bool     `yaml:"KAFKA_ENABLED"`
	KafkaBrokers []string `yaml:"KAFKA_BROKERS"`
	Topic        string   `yaml:"TOPIC"`

	RepairFavoritesOnLoad bool          `yaml:"REPAIR_FAVORITES_ON_LOAD"`
	PaymentFallbackDelay  time.Duration `yaml:"PAYMENT_FALLBACK_DELAY"`
	LogDevelopment        bool          `yaml:"LOG_DEVELOPMENT"`
}

// Default returns the settings used for keys the file leaves out.
func Default() *Config {
	return &Config{
		HTTPPort:             8080,
		StoreDriver:          db.DriverSQLite,
		SQLitePath:           "holdings.db",
		DBPort:               5432,
		DBSSLMode:            "disable",
		Topic:                "holdings-events",
		PaymentFallbackDelay: 2 * time.Second,
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, fmt.Errorf("%w: config %s: %v", e.ErrInvalidInput, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("%w: HTTP_PORT %d out of range", e.ErrInvalidInput, c.HTTPPort)
	}
	switch c.StoreDriver {
	case db.DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: SQLITE_PATH is required for the sqlite store", e.ErrInvalidInput)
		}
	case db.DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return fmt.Errorf("%w: DB_HOST and DB_NAME are required for the postgres store", e.ErrInvalidInput)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("%w: unknown STORE_DRIVER %q", e.ErrInvalidInput, c.StoreDriver)
	}
	if c.KafkaEnabled && (len(c.KafkaBrokers) == 0 || c.Topic == "") {
		return fmt.Errorf("%w: KAFKA_BROKERS and TOPIC are required when KAFKA_ENABLED", e.ErrInvalidInput)
	}
	if c.PaymentFallbackDelay <= 0 {
		return fmt.Errorf("%w: PAYMENT_FALLBACK_DELAY must be positive", e.ErrInvalidInput)
	}
	return nil
}

// Database maps the store settings onto the substrate config.
func (c *Config) Database() *db.Config {
	return &db.Config{
		Driver:     c.StoreDriver,
		SQLitePath: c.SQLitePath,
		Host:       c.DBHost,
		Port:       c.DBPort,
		User:       c.DBUser,
		Password:   c.DBPassword,
		DBName:     c.DBName,
		SSLMode:    c.DBSSLMode,
	}
}
