// Package controller implements the record repository, the favorites set and
// the search filter. The repository is the only mutator of the record
// collection and mirrors it to the store after every change.
package controller

import (
	"context"
	"fmt"
	"slices"
	"sync"

	e "github.com/gartstein/holdings/internal/holdings/errors"
	"github.com/gartstein/holdings/internal/holdings/events"
	"github.com/gartstein/holdings/internal/holdings/models"
	"github.com/gartstein/holdings/internal/holdings/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the persistence adapter both collections are mirrored to.
type Store interface {
	Load(ctx context.Context, key string, dst any) bool
	Save(ctx context.Context, key string, v any) error
}

type EventProducer interface {
	Produce(event events.Event)
}

// Repository holds the ordered record collection.
type Repository struct {
	mu        sync.RWMutex
	records   []models.Company
	store     Store
	favorites *Favorites
	producer  EventProducer
	logger    *zap.Logger
	newID     func() (uuid.UUID, error)
}

// NewRepository loads the persisted collection. Dangling favorites are reported,
// and removed only when repair is set.
func NewRepository(
	ctx context.Context,
	st Store,
	favorites *Favorites,
	producer EventProducer,
	logger *zap.Logger,
	repair bool,
) *Repository {
	r := &Repository{
		store:     st,
		favorites: favorites,
		producer:  producer,
		logger:    logger.Named("record_repository"),
		newID:     uuid.NewV7,
	}

	var records []models.Company
	if st.Load(ctx, store.CompaniesKey, &records) {
		r.records = records
	}

	dangling := 0
	for _, id := range favorites.IDs() {
		if !r.exists(id) {
			dangling++
		}
	}
	if dangling > 0 {
		r.logger.Warn("Favorites reference missing records", zap.Int("count", dangling))
		if repair {
			favorites.Prune(ctx, r.exists)
		}
	}
	return r
}

// List returns the records in insertion order.
func (r *Repository) List() []models.Company {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.records)
}

// Saved returns the favorited records in insertion order.
func (r *Repository) Saved() []models.Company {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Company, 0)
	for _, c := range r.records {
		if r.favorites.Contains(c.ID) {
			out = append(out, c.Clone())
		}
	}
	return out
}

func (r *Repository) Get(id uuid.UUID) (models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.index(id); i >= 0 {
		return r.records[i].Clone(), nil
	}
	return models.Company{}, fmt.Errorf("%w: company %s", e.ErrNotFound, id)
}

func (r *Repository) Exists(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exists(id)
}

// IsFavorite reports whether id names an existing, starred record.
func (r *Repository) IsFavorite(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exists(id) && r.favorites.Contains(id)
}

// Create validates the draft, assigns a fresh id, appends the record and persists.
func (r *Repository) Create(ctx context.Context, draft models.Draft) (models.Company, error) {
	d := draft.Normalized()
	if err := validateCreate(d); err != nil {
		return models.Company{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.freshID()
	if err != nil {
		return models.Company{}, fmt.Errorf("failed to assign id: %w", err)
	}
	company := d.Record(id)
	r.records = append(slices.Clip(r.records), company)
	r.persist(ctx)

	r.logger.Info("Company created", zap.String("company_id", id.String()))
	r.producer.Produce(events.Event{Type: events.RecordCreated, ID: id, Company: clonePtr(company)})
	return company.Clone(), nil
}

// Update replaces every field of the record except its id and persists.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, draft models.Draft) (models.Company, error) {
	d := draft.Normalized()
	if err := validateUpdate(d); err != nil {
		return models.Company{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return models.Company{}, fmt.Errorf("%w: company %s", e.ErrNotFound, id)
	}
	company := d.Record(id)
	records := slices.Clone(r.records)
	records[i] = company
	r.records = records
	r.persist(ctx)

	r.logger.Info("Company updated", zap.String("company_id", id.String()))
	r.producer.Produce(events.Event{Type: events.RecordUpdated, ID: id, Company: clonePtr(company)})
	return company.Clone(), nil
}

// Delete removes the record and its favorite in one step, then persists both
// collections. Deleting an unknown id is a no-op apart from the writes.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed *models.Company
	if i := r.index(id); i >= 0 {
		removed = clonePtr(r.records[i])
		r.records = slices.Delete(slices.Clone(r.records), i, i+1)
	}
	r.favorites.remove(ctx, id)
	r.persist(ctx)

	if removed != nil {
		r.logger.Info("Company deleted", zap.String("company_id", id.String()))
		r.producer.Produce(events.Event{Type: events.RecordDeleted, ID: id, Company: removed})
	}
}

// ToggleFavorite stars or unstars an existing record.
func (r *Repository) ToggleFavorite(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.exists(id) {
		return false, fmt.Errorf("%w: company %s", e.ErrNotFound, id)
	}
	return r.favorites.Toggle(ctx, id), nil
}

func (r *Repository) freshID() (uuid.UUID, error) {
	for {
		id, err := r.newID()
		if err != nil {
			return uuid.Nil, err
		}
		if id != uuid.Nil && !r.exists(id) {
			return id, nil
		}
	}
}

// persist must be called with mu held. Failures are logged by the store.
func (r *Repository) persist(ctx context.Context) {
	records := r.records
	if records == nil {
		records = []models.Company{}
	}
	_ = r.store.Save(ctx, store.CompaniesKey, records)
}

func (r *Repository) exists(id uuid.UUID) bool {
	return r.index(id) >= 0
}

func (r *Repository) index(id uuid.UUID) int {
	return slices.IndexFunc(r.records, func(c models.Company) bool { return c.ID == id })
}

func cloneAll(records []models.Company) []models.Company {
	out := make([]models.Company, len(records))
	for i, c := range records {
		out[i] = c.Clone()
	}
	return out
}

func clonePtr(c models.Company) *models.Company {
	clone := c.Clone()
	return &clone
}
