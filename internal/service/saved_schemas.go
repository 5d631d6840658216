package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/octobees/autoschema/internal/entity"
	"github.com/octobees/autoschema/internal/metrics"
	"github.com/octobees/autoschema/internal/render"
	"github.com/octobees/autoschema/internal/repository"
	"github.com/octobees/autoschema/internal/seed"
)

// ErrSavedSchemaNotFound is returned when an id does not match a saved schema.
var ErrSavedSchemaNotFound = repository.ErrSavedSchemaNotFound

// SavedSchemaService exposes the persisted saved-schema list.
type SavedSchemaService struct {
	repo    repository.SavedSchemasRepository
	schemas *SchemaService
	logger  *zap.Logger
}

// NewSavedSchemaService wires the service to its repository.
func NewSavedSchemaService(repo repository.SavedSchemasRepository, schemas *SchemaService, logger *zap.Logger) *SavedSchemaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if schemas == nil {
		schemas = NewSchemaService(nil, logger)
	}
	return &SavedSchemaService{repo: repo, schemas: schemas, logger: logger}
}

// List returns every saved schema, newest first. Storage failures are logged and yield an empty list.
func (s *SavedSchemaService) List(ctx context.Context) []entity.SavedSchema {
	items, err := s.repo.List(ctx)
	metrics.ObserveSavedOperation("list", err)
	if err != nil {
		s.logger.Error("load saved schemas", zap.Error(err))
		return []entity.SavedSchema{}
	}
	return items
}

// Get returns one saved schema.
func (s *SavedSchemaService) Get(ctx context.Context, id string) (entity.SavedSchema, error) {
	saved, err := s.repo.Get(ctx, id)
	metrics.ObserveSavedOperation("get", err)
	return saved, err
}

// Save stores a new entry at the top of the list.
func (s *SavedSchemaService) Save(ctx context.Context, p entity.DealershipProfile, name string) (entity.SavedSchema, error) {
	saved, err := s.repo.Save(ctx, p, name)
	metrics.ObserveSavedOperation("save", err)
	if err != nil {
		s.logger.Error("save schema", zap.Error(err))
		return entity.SavedSchema{}, err
	}
	s.logger.Info("schema saved", zap.String("id", saved.ID), zap.String("name", saved.Name))
	return saved, nil
}

// Update replaces the data of an existing entry.
func (s *SavedSchemaService) Update(ctx context.Context, id string, p entity.DealershipProfile, name string) (entity.SavedSchema, error) {
	updated, err := s.repo.Update(ctx, id, p, name)
	metrics.ObserveSavedOperation("update", err)
	if err != nil {
		s.logUnexpected("update schema", id, err)
		return entity.SavedSchema{}, err
	}
	s.logger.Info("schema updated", zap.String("id", id))
	return updated, nil
}

// Delete removes an entry.
func (s *SavedSchemaService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	metrics.ObserveSavedOperation("delete", err)
	if err != nil {
		s.logUnexpected("delete schema", id, err)
		return err
	}
	s.logger.Info("schema deleted", zap.String("id", id))
	return nil
}

// Duplicate copies an entry under a new id.
func (s *SavedSchemaService) Duplicate(ctx context.Context, id string) (entity.SavedSchema, error) {
	dup, err := s.repo.Duplicate(ctx, id)
	metrics.ObserveSavedOperation("duplicate", err)
	if err != nil {
		s.logUnexpected("duplicate schema", id, err)
		return entity.SavedSchema{}, err
	}
	s.logger.Info("schema duplicated", zap.String("source", id), zap.String("id", dup.ID))
	return dup, nil
}

// Initialize seeds the bundled sample schemas on first start when enabled.
func (s *SavedSchemaService) Initialize(ctx context.Context, enabled bool) (bool, error) {
	if !enabled {
		return false, nil
	}
	samples, err := seed.SampleSchemas()
	if err != nil {
		return false, fmt.Errorf("load sample schemas: %w", err)
	}
	seeded, err := s.repo.Initialize(ctx, samples)
	if err != nil {
		return false, fmt.Errorf("seed saved schemas: %w", err)
	}
	if seeded {
		s.logger.Info("seeded sample schemas", zap.Int("count", len(samples)))
	}
	return seeded, nil
}

// Render renders a saved schema in the requested format.
func (s *SavedSchemaService) Render(ctx context.Context, id, format string) (render.Format, string, error) {
	saved, err := s.Get(ctx, id)
	if err != nil {
		return "", "", err
	}
	return s.schemas.Render(saved.Data, format)
}

// Export builds a download artifact for a saved schema.
func (s *SavedSchemaService) Export(ctx context.Context, id, format string) (render.Artifact, error) {
	saved, err := s.Get(ctx, id)
	if err != nil {
		return render.Artifact{}, err
	}
	return s.schemas.Export(saved.Data, format)
}

func (s *SavedSchemaService) logUnexpected(msg, id string, err error) {
	if errors.Is(err, ErrSavedSchemaNotFound) {
		return
	}
	s.logger.Error(msg, zap.String("id", id), zap.Error(err))
}
