// Package store mirrors named collections into a durable key-value substrate.
// Loads degrade to an empty collection and saves are best effort: failures are
// logged and never interrupt the caller, whose in-memory state stays authoritative.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	e "github.com/gartstein/holdings/internal/holdings/errors"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

// Collection keys.
const (
	CompaniesKey = "moneyHoldingsCompanies"
	FavoritesKey = "moneyHoldingsSavedNames"
)

// Substrate is the raw key-value storage. Get returns ErrNotFound for absent keys.
type Substrate interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type Store struct {
	substrate Substrate
	logger    *zap.Logger
}

func New(substrate Substrate, logger *zap.Logger) *Store {
	return &Store{
		substrate: substrate,
		logger:    logger.Named("store"),
	}
}

// Load decodes the collection under key into dst and reports whether it did.
// An absent or malformed value returns false, and dst must then be discarded.
func (s *Store) Load(ctx context.Context, key string, dst any) bool {
	raw, err := s.substrate.Get(ctx, key)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return false
		}
		s.logger.Warn("Failed to read collection",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	if len(raw) == 0 {
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Warn("Failed to parse collection",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	return true
}

// Save serializes v and writes it under key. The returned error wraps ErrStore and
// has already been logged; callers are free to ignore it.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	value, err := jsonMarshal(v)
	if err != nil {
		s.logger.Error("Failed to serialize collection",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("%w: serialize %s: %v", e.ErrStore, key, err)
	}

	if err := s.substrate.Put(ctx, key, value); err != nil {
		s.logger.Error("Failed to save collection",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("%w: write %s: %v", e.ErrStore, key, err)
	}
	return nil
}
