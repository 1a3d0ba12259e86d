package recipe

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/recipediary/internal/domain"
	"github.com/heartmarshall/recipediary/internal/search"
)

// snapshot returns the current collection. The slice is never mutated in
// place, so callers may read it without holding the lock.
func (s *Service) snapshot() []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection
}

// Recipes returns a copy of the collection, newest first.
func (s *Service) Recipes() []domain.Recipe {
	return cloneAll(s.snapshot())
}

// Get returns the recipe with the given id from the collection.
func (s *Service) Get(id uuid.UUID) (*domain.Recipe, error) {
	for _, r := range s.snapshot() {
		if r.ID == id {
			c := r.Clone()
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Loading reports whether a store call is in flight.
func (s *Service) Loading() bool {
	return s.inflight.Load() > 0
}

// Current returns the identity the collection belongs to, or nil.
func (s *Service) Current() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyIdentity(s.current)
}

// Filter returns the recipes matching f, in collection order.
func (s *Service) Filter(f domain.RecipeFilter) []domain.Recipe {
	return cloneAll(search.Filter(s.snapshot(), f))
}

// Cuisines returns the distinct cuisines of the collection in first-seen order.
func (s *Service) Cuisines() []string {
	return search.CuisineOptions(s.snapshot())
}
