package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/autoschema/internal/entity"
)

const (
	// DefaultStoreKey is the key holding the serialized saved-schema list.
	DefaultStoreKey = "autoschema_saved"

	untitledSchemaName = "Untitled Schema"
	copySuffix         = " (Copy)"
)

// ErrSavedSchemaNotFound is returned when no saved schema matches an id.
var ErrSavedSchemaNotFound = errors.New("saved schema not found")

// ErrCorruptStore is returned when the stored list cannot be decoded.
var ErrCorruptStore = errors.New("saved schema list is corrupt")

// SavedSchemasRepository defines persistence operations for saved dealership profiles.
type SavedSchemasRepository interface {
	List(ctx context.Context) ([]entity.SavedSchema, error)
	Get(ctx context.Context, id string) (entity.SavedSchema, error)
	Save(ctx context.Context, profile entity.DealershipProfile, name string) (entity.SavedSchema, error)
	Update(ctx context.Context, id string, profile entity.DealershipProfile, name string) (entity.SavedSchema, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (entity.SavedSchema, error)
	Initialize(ctx context.Context, seed []entity.SavedSchema) (bool, error)
}

// KVSavedSchemasRepository keeps the whole list under a single key of a KeyValueStore.
type KVSavedSchemasRepository struct {
	store KeyValueStore
	key   string
	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

// SavedSchemasOption configures a KVSavedSchemasRepository.
type SavedSchemasOption func(*KVSavedSchemasRepository)

// WithStoreKey overrides DefaultStoreKey.
func WithStoreKey(key string) SavedSchemasOption {
	return func(r *KVSavedSchemasRepository) {
		if strings.TrimSpace(key) != "" {
			r.key = key
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) SavedSchemasOption {
	return func(r *KVSavedSchemasRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(newID func() string) SavedSchemasOption {
	return func(r *KVSavedSchemasRepository) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// NewKVSavedSchemasRepository wires the repository to a key-value backend.
func NewKVSavedSchemasRepository(store KeyValueStore, opts ...SavedSchemasOption) *KVSavedSchemasRepository {
	r := &KVSavedSchemasRepository{
		store: store,
		key:   DefaultStoreKey,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the store key used by the repository.
func (r *KVSavedSchemasRepository) Key() string {
	return r.key
}

// List returns every saved schema, newest first.
func (r *KVSavedSchemasRepository) List(ctx context.Context) ([]entity.SavedSchema, error) {
	items, _, err := r.load(ctx)
	return items, err
}

// Get returns the saved schema with the given id.
func (r *KVSavedSchemasRepository) Get(ctx context.Context, id string) (entity.SavedSchema, error) {
	items, _, err := r.load(ctx)
	if err != nil {
		return entity.SavedSchema{}, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return entity.SavedSchema{}, ErrSavedSchemaNotFound
	}
	return items[idx], nil
}

// Save prepends a new entry for the profile.
func (r *KVSavedSchemasRepository) Save(ctx context.Context, profile entity.DealershipProfile, name string) (entity.SavedSchema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, _, err := r.load(ctx)
	if err != nil {
		return entity.SavedSchema{}, err
	}

	now := r.now()
	saved := entity.SavedSchema{
		ID:        r.newID(),
		Name:      firstNonEmpty(name, profile.Name, untitledSchemaName),
		Data:      profile,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.persist(ctx, prepend(items, saved)); err != nil {
		return entity.SavedSchema{}, err
	}
	return saved, nil
}

// Update replaces the data of an existing entry in place.
func (r *KVSavedSchemasRepository) Update(ctx context.Context, id string, profile entity.DealershipProfile, name string) (entity.SavedSchema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, _, err := r.load(ctx)
	if err != nil {
		return entity.SavedSchema{}, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return entity.SavedSchema{}, ErrSavedSchemaNotFound
	}

	updated := items[idx]
	updated.Name = firstNonEmpty(name, profile.Name, updated.Name)
	updated.Data = profile
	updated.UpdatedAt = r.now()
	items[idx] = updated

	if err := r.persist(ctx, items); err != nil {
		return entity.SavedSchema{}, err
	}
	return updated, nil
}

// Delete removes the entry with the given id.
func (r *KVSavedSchemasRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, _, err := r.load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return ErrSavedSchemaNotFound
	}
	remaining := append(items[:idx:idx], items[idx+1:]...)
	return r.persist(ctx, remaining)
}

// Duplicate prepends a copy of an entry under a new id.
func (r *KVSavedSchemasRepository) Duplicate(ctx context.Context, id string) (entity.SavedSchema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, _, err := r.load(ctx)
	if err != nil {
		return entity.SavedSchema{}, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return entity.SavedSchema{}, ErrSavedSchemaNotFound
	}

	data, err := cloneProfile(items[idx].Data)
	if err != nil {
		return entity.SavedSchema{}, err
	}
	now := r.now()
	dup := entity.SavedSchema{
		ID:        r.newID(),
		Name:      items[idx].Name + copySuffix,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.persist(ctx, prepend(items, dup)); err != nil {
		return entity.SavedSchema{}, err
	}
	return dup, nil
}

// Initialize writes seed only if the key has never been written. It reports whether it did.
func (r *KVSavedSchemasRepository) Initialize(ctx context.Context, seed []entity.SavedSchema) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return false, fmt.Errorf("read saved schemas: %w", err)
	}
	if found {
		return false, nil
	}
	if err := r.persist(ctx, append([]entity.SavedSchema(nil), seed...)); err != nil {
		return false, err
	}
	return true, nil
}

func (r *KVSavedSchemasRepository) load(ctx context.Context) ([]entity.SavedSchema, bool, error) {
	raw, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, false, fmt.Errorf("read saved schemas: %w", err)
	}
	items := []entity.SavedSchema{}
	if !found || len(raw) == 0 {
		return items, found, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if items == nil {
		items = []entity.SavedSchema{}
	}
	return items, true, nil
}

func (r *KVSavedSchemasRepository) persist(ctx context.Context, items []entity.SavedSchema) error {
	if items == nil {
		items = []entity.SavedSchema{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode saved schemas: %w", err)
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("write saved schemas: %w", err)
	}
	return nil
}

func indexOf(items []entity.SavedSchema, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func prepend(items []entity.SavedSchema, item entity.SavedSchema) []entity.SavedSchema {
	out := make([]entity.SavedSchema, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// cloneProfile deep-copies through JSON so a duplicate shares no slices with its source entry.
func cloneProfile(p entity.DealershipProfile) (entity.DealershipProfile, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return entity.DealershipProfile{}, fmt.Errorf("copy profile: %w", err)
	}
	var out entity.DealershipProfile
	if err := json.Unmarshal(raw, &out); err != nil {
		return entity.DealershipProfile{}, fmt.Errorf("copy profile: %w", err)
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ SavedSchemasRepository = (*KVSavedSchemasRepository)(nil)
