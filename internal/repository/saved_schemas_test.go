package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/octobees/autoschema/internal/entity"
)

type SavedSchemasSuite struct {
	suite.Suite

	ctx   context.Context
	store *MemoryKeyValueStore
	repo  *KVSavedSchemasRepository
	clock time.Time
	ids   int
}

func (s *SavedSchemasSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewMemoryKeyValueStore()
	s.clock = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	s.ids = 0
	s.repo = NewKVSavedSchemasRepository(s.store,
		WithClock(func() time.Time {
			s.clock = s.clock.Add(time.Minute)
			return s.clock
		}),
		WithIDGenerator(func() string {
			s.ids++
			return fmt.Sprintf("id-%d", s.ids)
		}),
	)
}

func TestSavedSchemasSuite(t *testing.T) {
	suite.Run(t, new(SavedSchemasSuite))
}

func profile(name string) entity.DealershipProfile {
	return entity.DealershipProfile{
		Name:            name,
		URL:             "https://example.com",
		Telephone:       "(555) 123-4567",
		Address:         entity.PostalAddress{StreetAddress: "1 Main St", AddressLocality: "Springfield"},
		PaymentAccepted: []string{"Cash"},
		OpeningHours:    []entity.HoursEntry{{DayOfWeek: "Monday", Opens: "09:00", Closes: "18:00"}},
	}
}

func (s *SavedSchemasSuite) TestListOnEmptyStore() {
	items, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.NotNil(items)
	s.Empty(items)
}

func (s *SavedSchemasSuite) TestSaveThenGetRoundTrips() {
	p := profile("Acme Motors")
	p.Geo = entity.GeoPoint{Latitude: "40.1", Longitude: "-74.2"}

	saved, err := s.repo.Save(s.ctx, p, "")
	s.Require().NoError(err)
	s.Equal("id-1", saved.ID)
	s.Equal("Acme Motors", saved.Name)
	s.Equal(saved.CreatedAt, saved.UpdatedAt)

	got, err := s.repo.Get(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(p, got.Data)
	s.True(saved.CreatedAt.Equal(got.CreatedAt))
}

func (s *SavedSchemasSuite) TestSaveNameFallbacks() {
	explicit, err := s.repo.Save(s.ctx, profile("Acme"), "My Schema")
	s.Require().NoError(err)
	s.Equal("My Schema", explicit.Name)

	untitled, err := s.repo.Save(s.ctx, profile(""), "")
	s.Require().NoError(err)
	s.Equal("Untitled Schema", untitled.Name)
}

func (s *SavedSchemasSuite) TestSavePrependsNewest() {
	for _, name := range []string{"A", "B", "C"} {
		_, err := s.repo.Save(s.ctx, profile(name), "")
		s.Require().NoError(err)
	}

	items, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 3)
	s.Equal([]string{"C", "B", "A"}, []string{items[0].Name, items[1].Name, items[2].Name})
}

func (s *SavedSchemasSuite) TestUpdateKeepsPositionAndCreatedAt() {
	first, err := s.repo.Save(s.ctx, profile("First"), "")
	s.Require().NoError(err)
	_, err = s.repo.Save(s.ctx, profile("Second"), "")
	s.Require().NoError(err)

	changed := profile("First Renamed")
	changed.Description = "Updated"
	updated, err := s.repo.Update(s.ctx, first.ID, changed, "")
	s.Require().NoError(err)

	s.Equal("First Renamed", updated.Name)
	s.True(first.CreatedAt.Equal(updated.CreatedAt))
	s.True(updated.UpdatedAt.After(updated.CreatedAt))

	items, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal(first.ID, items[1].ID)
	s.Equal("Updated", items[1].Data.Description)
}

func (s *SavedSchemasSuite) TestUpdateKeepsExistingNameWhenBothEmpty() {
	saved, err := s.repo.Save(s.ctx, profile("Acme"), "Custom")
	s.Require().NoError(err)

	updated, err := s.repo.Update(s.ctx, saved.ID, profile(""), "")
	s.Require().NoError(err)
	s.Equal("Custom", updated.Name)
}

func (s *SavedSchemasSuite) TestUnknownIDReturnsNotFound() {
	_, err := s.repo.Save(s.ctx, profile("Acme"), "")
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, "nope")
	s.ErrorIs(err, ErrSavedSchemaNotFound)
	_, err = s.repo.Update(s.ctx, "nope", profile("x"), "")
	s.ErrorIs(err, ErrSavedSchemaNotFound)
	s.ErrorIs(s.repo.Delete(s.ctx, "nope"), ErrSavedSchemaNotFound)
	_, err = s.repo.Duplicate(s.ctx, "nope")
	s.ErrorIs(err, ErrSavedSchemaNotFound)

	items, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(items, 1)
}

func (s *SavedSchemasSuite) TestDeleteRemovesOnlyTarget() {
	a, err := s.repo.Save(s.ctx, profile("A"), "")
	s.Require().NoError(err)
	b, err := s.repo.Save(s.ctx, profile("B"), "")
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(s.ctx, a.ID))

	items, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(b.ID, items[0].ID)
}

func (s *SavedSchemasSuite) TestDuplicate() {
	orig, err := s.repo.Save(s.ctx, profile("Acme"), "")
	s.Require().NoError(err)

	dup, err := s.repo.Duplicate(s.ctx, orig.ID)
	s.Require().NoError(err)
	s.NotEqual(orig.ID, dup.ID)
	s.Equal("Acme (Copy)", dup.Name)
	s.Equal(orig.Data, dup.Data)
	s.True(dup.CreatedAt.After(orig.CreatedAt))

	dup.Data.PaymentAccepted[0] = "Changed"

	items, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal(dup.ID, items[0].ID)
	s.Equal(orig.ID, items[1].ID)
	s.Equal("Acme", items[1].Name)
	s.Equal([]string{"Cash"}, items[1].Data.PaymentAccepted)
}

func (s *SavedSchemasSuite) TestInitializeSeedsOnce() {
	seed := []entity.SavedSchema{{ID: "sample-1", Name: "Sample", Data: profile("Sample")}}

	seeded, err := s.repo.Initialize(s.ctx, seed)
	s.Require().NoError(err)
	s.True(seeded)

	seeded, err = s.repo.Initialize(s.ctx, seed)
	s.Require().NoError(err)
	s.False(seeded)

	items, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(items, 1)
}

func (s *SavedSchemasSuite) TestInitializeRespectsEmptiedList() {
	seed := []entity.SavedSchema{{ID: "sample-1", Name: "Sample"}}
	_, err := s.repo.Initialize(s.ctx, seed)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Delete(s.ctx, "sample-1"))

	seeded, err := s.repo.Initialize(s.ctx, seed)
	s.Require().NoError(err)
	s.False(seeded)

	items, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *SavedSchemasSuite) TestCorruptListBlocksMutations() {
	s.Require().NoError(s.store.Set(s.ctx, DefaultStoreKey, []byte("{not json")))

	_, err := s.repo.List(s.ctx)
	s.ErrorIs(err, ErrCorruptStore)

	_, err = s.repo.Save(s.ctx, profile("Acme"), "")
	s.ErrorIs(err, ErrCorruptStore)

	raw, _, err := s.store.Get(s.ctx, DefaultStoreKey)
	s.Require().NoError(err)
	s.Equal("{not json", string(raw))
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}

func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("backend down")
}

func TestKVSavedSchemasRepository_PropagatesStoreErrors(t *testing.T) {
	repo := NewKVSavedSchemasRepository(failingStore{})

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")

	_, err = repo.Initialize(context.Background(), nil)
	require.Error(t, err)
}

func TestKVSavedSchemasRepository_WithStoreKey(t *testing.T) {
	store := NewMemoryKeyValueStore()
	repo := NewKVSavedSchemasRepository(store, WithStoreKey("custom"), WithStoreKey("  "))
	assert.Equal(t, "custom", repo.Key())

	_, err := repo.Save(context.Background(), profile("Acme"), "")
	require.NoError(t, err)

	_, found, err := store.Get(context.Background(), "custom")
	require.NoError(t, err)
	assert.True(t, found)
}
