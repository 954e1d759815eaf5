package services

import (
	"context"
	"math"
	"sync"

	"hotel-storefront/logger"
	"hotel-storefront/models"
)

// RoomLister fetches the full room collection.
type RoomLister interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
}

// CatalogStore holds the fetched rooms and the filtered view derived from
// them. Every filter operation recomputes the view from the full collection.
type CatalogStore struct {
	api  RoomLister
	mode models.FilterMode
	log  logger.Logger

	mu       sync.RWMutex
	rooms    []models.Room
	derived  []models.Room
	criteria models.FilterCriteria
	bounds   models.PriceBounds
	loaded   bool
}

func NewCatalogStore(api RoomLister, mode models.FilterMode, log logger.Logger) *CatalogStore {
	if mode == "" {
		mode = models.FilterLastWins
	}
	if log == nil {
		log = logger.Discard()
	}
	return &CatalogStore{
		api:      api,
		mode:     mode,
		log:      log,
		criteria: models.FilterCriteria{CategoryName: models.CategoryAll},
	}
}

func (s *CatalogStore) Mode() models.FilterMode { return s.mode }

// Load fetches the collection and resets every filter. On failure the
// collection is left empty and the error is returned for the caller to log
// or ignore; an empty catalog means "no rooms available".
func (s *CatalogStore) Load(ctx context.Context) error {
	rooms, err := s.api.ListRooms(ctx)
	if err != nil {
		s.log.Error("catalog: load rooms: %v", err)
		s.mu.Lock()
		s.rooms, s.derived = nil, nil
		s.bounds = models.PriceBounds{}
		s.criteria = models.FilterCriteria{CategoryName: models.CategoryAll}
		s.loaded = true
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = rooms
	s.bounds = priceBounds(rooms)
	s.criteria = models.FilterCriteria{
		CategoryName: models.CategoryAll,
		MaxPrice:     s.bounds.Max,
	}
	s.derived = s.rooms
	s.loaded = true
	s.log.Info("catalog: loaded %d rooms (price %.2f..%.2f)", len(rooms), s.bounds.Min, s.bounds.Max)
	return nil
}

func (s *CatalogStore) SetCategoryFilter(category string) {
	if category == "" {
		category = models.CategoryAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.CategoryName = category
	if s.mode == models.FilterComposed {
		s.recomposeLocked()
		return
	}
	if category == models.CategoryAll {
		s.derived = s.rooms
		return
	}
	s.derived = filterRooms(s.rooms, func(r models.Room) bool { return r.CategoryName == category })
}

// SetPriceThreshold keeps rooms priced at or below value. The threshold is
// clamped to the observed price range once rooms are loaded.
func (s *CatalogStore) SetPriceThreshold(value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.rooms) > 0 {
		value = math.Max(s.bounds.Min, math.Min(value, s.bounds.Max))
	}
	s.criteria.MaxPrice = value
	if s.mode == models.FilterComposed {
		s.recomposeLocked()
		return
	}
	s.derived = filterRooms(s.rooms, func(r models.Room) bool { return float64(r.PricePerNight) <= value })
}

// ToggleAvailabilityOnly flips the flag and returns its new value.
func (s *CatalogStore) ToggleAvailabilityOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.AvailabilityOnly = !s.criteria.AvailabilityOnly
	switch {
	case s.mode == models.FilterComposed:
		s.recomposeLocked()
	case s.criteria.AvailabilityOnly:
		s.derived = filterRooms(s.rooms, func(r models.Room) bool { return !r.IsBooked })
	default:
		s.derived = s.rooms
	}
	return s.criteria.AvailabilityOnly
}

func (s *CatalogStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = models.FilterCriteria{
		CategoryName: models.CategoryAll,
		MaxPrice:     s.bounds.Max,
	}
	s.derived = s.rooms
}

// ApplyCheckout marks the room as free in the collection and in the current
// view. The view is not refiltered. Reports whether the room was found.
func (s *CatalogStore) ApplyCheckout(roomID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	rooms := make([]models.Room, len(s.rooms))
	copy(rooms, s.rooms)
	for i := range rooms {
		if rooms[i].ID == roomID {
			rooms[i].IsBooked = false
			found = true
		}
	}
	derived := make([]models.Room, len(s.derived))
	copy(derived, s.derived)
	for i := range derived {
		if derived[i].ID == roomID {
			derived[i].IsBooked = false
		}
	}

	sameView := sameBacking(s.rooms, s.derived)
	s.rooms = rooms
	if sameView {
		s.derived = rooms
	} else {
		s.derived = derived
	}
	return found
}

// recomposeLocked ANDs every stored predicate.
func (s *CatalogStore) recomposeLocked() {
	c := s.criteria
	s.derived = filterRooms(s.rooms, func(r models.Room) bool {
		if c.CategoryName != models.CategoryAll && r.CategoryName != c.CategoryName {
			return false
		}
		if float64(r.PricePerNight) > c.MaxPrice {
			return false
		}
		return !c.AvailabilityOnly || !r.IsBooked
	})
}

// Rooms returns a copy of the full collection.
func (s *CatalogStore) Rooms() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRooms(s.rooms)
}

// Derived returns a copy of the filtered view.
func (s *CatalogStore) Derived() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRooms(s.derived)
}

func (s *CatalogStore) Criteria() models.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

func (s *CatalogStore) PriceBounds() models.PriceBounds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds
}

func (s *CatalogStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Categories lists "all" followed by each category name in collection order.
func (s *CatalogStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{models.CategoryAll}
	seen := map[string]bool{}
	for _, r := range s.rooms {
		if r.CategoryName == "" || seen[r.CategoryName] {
			continue
		}
		seen[r.CategoryName] = true
		out = append(out, r.CategoryName)
	}
	return out
}

func (s *CatalogStore) FindBySlug(slug string) (models.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rooms {
		if r.Slug == slug {
			return r, true
		}
	}
	return models.Room{}, false
}

func (s *CatalogStore) Featured() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterRooms(s.rooms, func(r models.Room) bool { return r.Featured })
}

// RoomSizeBounds is the smallest and largest parseable room size. ok is false
// when no room carries a usable size.
func (s *CatalogStore) RoomSizeBounds() (min, max int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rooms {
		n, valid := r.Size()
		if !valid {
			continue
		}
		if !ok || n < min {
			min = n
		}
		if !ok || n > max {
			max = n
		}
		ok = true
	}
	return min, max, ok
}

func priceBounds(rooms []models.Room) models.PriceBounds {
	if len(rooms) == 0 {
		return models.PriceBounds{}
	}
	b := models.PriceBounds{Min: float64(rooms[0].PricePerNight), Max: float64(rooms[0].PricePerNight)}
	for _, r := range rooms[1:] {
		p := float64(r.PricePerNight)
		if p < b.Min {
			b.Min = p
		}
		if p > b.Max {
			b.Max = p
		}
	}
	return b
}

func filterRooms(rooms []models.Room, keep func(models.Room) bool) []models.Room {
	out := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func cloneRooms(rooms []models.Room) []models.Room {
	out := make([]models.Room, len(rooms))
	copy(out, rooms)
	return out
}

func sameBacking(a, b []models.Room) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
