package controller

import (
	"context"
	"slices"
	"sync"

	"github.com/gartstein/holdings/internal/holdings/events"
	"github.com/gartstein/holdings/internal/holdings/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Favorites is the set of starred record ids, kept in the order they were starred.
type Favorites struct {
	mu       sync.RWMutex
	ids      []uuid.UUID
	store    Store
	producer EventProducer
	logger   *zap.Logger
}

// NewFavorites loads the persisted set. Nothing is pruned here: ids whose record
// is gone stay until a repair pass or a cascade removes them.
func NewFavorites(ctx context.Context, st Store, producer EventProducer, logger *zap.Logger) *Favorites {
	f := &Favorites{
		store:    st,
		producer: producer,
		logger:   logger.Named("favorites"),
	}

	var ids []uuid.UUID
	if st.Load(ctx, store.FavoritesKey, &ids) {
		f.ids = dedupe(ids)
	}
	return f
}

// Toggle stars id if it is not starred, unstars it otherwise, and persists the set.
// It reports whether id is starred afterwards.
func (f *Favorites) Toggle(ctx context.Context, id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	starred := !slices.Contains(f.ids, id)
	if starred {
		f.ids = append(slices.Clip(f.ids), id)
	} else {
		f.ids = slices.DeleteFunc(slices.Clone(f.ids), func(x uuid.UUID) bool { return x == id })
	}
	f.persist(ctx)

	f.producer.Produce(events.Event{Type: events.FavoriteToggled, ID: id, Favorite: &starred})
	return starred
}

func (f *Favorites) Contains(id uuid.UUID) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Contains(f.ids, id)
}

// IDs returns a copy of the set in starring order.
func (f *Favorites) IDs() []uuid.UUID {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.ids)
}

// Prune drops every id for which keep returns false and returns how many were dropped.
func (f *Favorites) Prune(ctx context.Context, keep func(uuid.UUID) bool) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := make([]uuid.UUID, 0, len(f.ids))
	for _, id := range f.ids {
		if keep(id) {
			kept = append(kept, id)
		}
	}
	dropped := len(f.ids) - len(kept)
	if dropped > 0 {
		f.ids = kept
		f.persist(ctx)
	}
	return dropped
}

// remove is the delete cascade. The set is re-persisted even when id was absent.
func (f *Favorites) remove(ctx context.Context, id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ids = slices.DeleteFunc(slices.Clone(f.ids), func(x uuid.UUID) bool { return x == id })
	f.persist(ctx)
}

// persist must be called with mu held. Failures are logged by the store.
func (f *Favorites) persist(ctx context.Context) {
	ids := f.ids
	if ids == nil {
		ids = []uuid.UUID{}
	}
	_ = f.store.Save(ctx, store.FavoritesKey, ids)
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
