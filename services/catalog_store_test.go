package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-storefront/models"
)

type stubLister struct {
	rooms []models.Room
	err   error
}

func (s stubLister) ListRooms(context.Context) ([]models.Room, error) {
	return s.rooms, s.err
}

func sampleRooms() []models.Room {
	return []models.Room{
		{ID: 1, Slug: "standard-101", Title: "A", CategoryName: "Standard", PricePerNight: 100, RoomSize: "24", Featured: true},
		{ID: 2, Slug: "suite-201", Title: "B", CategoryName: "Suite", PricePerNight: 300, IsBooked: true, RoomSize: "60m"},
	}
}

func loadedStore(t *testing.T, mode models.FilterMode) *CatalogStore {
	t.Helper()
	s := NewCatalogStore(stubLister{rooms: sampleRooms()}, mode, nil)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func slugs(rooms []models.Room) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Slug)
	}
	return out
}

func TestCatalogLoadComputesBounds(t *testing.T) {
	s := loadedStore(t, models.FilterLastWins)

	assert.True(t, s.Loaded())
	assert.Equal(t, models.PriceBounds{Min: 100, Max: 300}, s.PriceBounds())
	assert.Equal(t, 300.0, s.Criteria().MaxPrice)
	assert.Equal(t, models.CategoryAll, s.Criteria().CategoryName)
	assert.Equal(t, slugs(s.Rooms()), slugs(s.Derived()))

	b := s.PriceBounds()
	for _, r := range s.Rooms() {
		assert.GreaterOrEqual(t, float64(r.PricePerNight), b.Min)
		assert.LessOrEqual(t, float64(r.PricePerNight), b.Max)
	}
}

func TestCatalogLoadFailureLeavesEmpty(t *testing.T) {
	boom := errors.New("connection refused")
	s := NewCatalogStore(stubLister{err: boom}, "", nil)

	err := s.Load(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Empty(t, s.Rooms())
	assert.Empty(t, s.Derived())
	assert.Equal(t, []string{models.CategoryAll}, s.Categories())
}

func TestCatalogFilterScenario(t *testing.T) {
	s := loadedStore(t, models.FilterLastWins)

	s.SetPriceThreshold(150)
	assert.Equal(t, []string{"standard-101"}, slugs(s.Derived()))

	s.ClearFilters()
	assert.True(t, s.ToggleAvailabilityOnly())
	assert.Equal(t, []string{"standard-101"}, slugs(s.Derived()))

	s.SetCategoryFilter("Suite")
	assert.Equal(t, []string{"suite-201"}, slugs(s.Derived()))
}

func TestCatalogPriceThresholdClamps(t *testing.T) {
	for _, mode := range []models.FilterMode{models.FilterLastWins, models.FilterComposed} {
		t.Run(string(mode), func(t *testing.T) {
			s := loadedStore(t, mode)

			s.SetPriceThreshold(1)
			assert.Equal(t, 100.0, s.Criteria().MaxPrice)
			assert.Equal(t, []string{"standard-101"}, slugs(s.Derived()))

			s.SetPriceThreshold(10_000)
			assert.Equal(t, 300.0, s.Criteria().MaxPrice)
			assert.Equal(t, []string{"standard-101", "suite-201"}, slugs(s.Derived()))

			s.SetPriceThreshold(250)
			assert.Equal(t, 250.0, s.Criteria().MaxPrice)
			assert.Equal(t, []string{"standard-101"}, slugs(s.Derived()))
		})
	}
}

func TestCatalogPriceThresholdBeforeLoadIsUnclamped(t *testing.T) {
	s := NewCatalogStore(stubLister{rooms: sampleRooms()}, models.FilterLastWins, nil)

	s.SetPriceThreshold(42)
	assert.Equal(t, 42.0, s.Criteria().MaxPrice)
	assert.Empty(t, s.Derived())

	s.SetPriceThreshold(-5)
	assert.Equal(t, -5.0, s.Criteria().MaxPrice)

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 300.0, s.Criteria().MaxPrice)
}

func TestCatalogLastFilterWins(t *testing.T) {
	s := loadedStore(t, models.FilterLastWins)

	s.SetCategoryFilter("Suite")
	s.SetPriceThreshold(500)
	assert.Equal(t, []string{"standard-101", "suite-201"}, slugs(s.Derived()))
	assert.Equal(t, "Suite", s.Criteria().CategoryName)
	assert.Equal(t, 300.0, s.Criteria().MaxPrice)

	s.SetPriceThreshold(10)
	assert.Equal(t, 100.0, s.Criteria().MaxPrice)
	assert.Equal(t, []string{"standard-101"}, slugs(s.Derived()))

	s.SetCategoryFilter(models.CategoryAll)
	assert.Len(t, s.Derived(), 2)

	assert.True(t, s.ToggleAvailabilityOnly())
	assert.False(t, s.ToggleAvailabilityOnly())
	assert.Len(t, s.Derived(), 2)
}

func TestCatalogComposedMode(t *testing.T) {
	s := loadedStore(t, models.FilterComposed)

	s.SetCategoryFilter("Suite")
	s.SetPriceThreshold(150)
	assert.Empty(t, s.Derived())

	s.SetPriceThreshold(300)
	assert.Equal(t, []string{"suite-201"}, slugs(s.Derived()))

	s.ToggleAvailabilityOnly()
	assert.Empty(t, s.Derived())
}

func TestCatalogClearFilters(t *testing.T) {
	s := loadedStore(t, models.FilterComposed)

	s.SetCategoryFilter("Standard")
	s.SetPriceThreshold(120)
	s.ToggleAvailabilityOnly()
	s.ClearFilters()

	assert.Equal(t, models.FilterCriteria{CategoryName: models.CategoryAll, MaxPrice: 300}, s.Criteria())
	assert.Equal(t, s.Rooms(), s.Derived())
}

func TestCatalogApplyCheckout(t *testing.T) {
	s := loadedStore(t, models.FilterLastWins)
	s.SetCategoryFilter("Suite")

	assert.True(t, s.ApplyCheckout(2))

	room, ok := s.FindBySlug("suite-201")
	require.True(t, ok)
	assert.False(t, room.IsBooked)
	require.Len(t, s.Derived(), 1)
	assert.False(t, s.Derived()[0].IsBooked)

	assert.False(t, s.ApplyCheckout(99))
}

func TestCatalogApplyCheckoutKeepsStaleView(t *testing.T) {
	s := loadedStore(t, models.FilterLastWins)
	s.ToggleAvailabilityOnly()

	s.ApplyCheckout(2)
	assert.Equal(t, []string{"standard-101"}, slugs(s.Derived()))

	s.ToggleAvailabilityOnly()
	s.ToggleAvailabilityOnly()
	assert.Equal(t, []string{"standard-101", "suite-201"}, slugs(s.Derived()))
}

func TestCatalogAccessors(t *testing.T) {
	s := loadedStore(t, models.FilterLastWins)

	assert.Equal(t, []string{models.CategoryAll, "Standard", "Suite"}, s.Categories())
	assert.Equal(t, []string{"standard-101"}, slugs(s.Featured()))

	min, max, ok := s.RoomSizeBounds()
	require.True(t, ok)
	assert.Equal(t, 24, min)
	assert.Equal(t, 60, max)

	_, ok = s.FindBySlug("missing")
	assert.False(t, ok)

	rooms := s.Rooms()
	rooms[0].Title = "changed"
	assert.Equal(t, "A", s.Rooms()[0].Title)
}
