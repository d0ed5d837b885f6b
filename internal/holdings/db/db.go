// Package db implements the durable key-value substrate behind the store
// adapter, as a single GORM table reachable over sqlite or postgres.
package db

import (
	"context"
	"errors"
	"fmt"

	dbmodels "github.com/gartstein/holdings/internal/holdings/db/models"
	e "github.com/gartstein/holdings/internal/holdings/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type KV struct {
	db *gorm.DB
}

type Config struct {
	Driver string
	// SQLitePath is a file path or ":memory:".
	SQLitePath string

	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (cfg *Config) dialector() (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return sqlite.Open(cfg.SQLitePath), nil
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", e.ErrInvalidInput, cfg.Driver)
	}
}

func NewKV(cfg *Config) (*KV, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&dbmodels.Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &KV{db: db}, nil
}

// Get returns the raw value under key, or ErrNotFound when the key was never written.
func (r *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var entry dbmodels.Entry
	result := r.db.WithContext(ctx).First(&entry, "entry_key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return []byte(entry.Value), nil
}

// Put writes value under key, replacing any previous value.
func (r *KV) Put(ctx context.Context, key string, value []byte) error {
	entry := dbmodels.Entry{Key: key, Value: string(value)}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
	return result.Error
}

// Ping checks that the underlying connection is usable.
func (r *KV) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *KV) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
