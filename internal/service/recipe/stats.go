package recipe

import (
	"fmt"

	"github.com/heartmarshall/recipediary/internal/domain"
	"github.com/heartmarshall/recipediary/internal/impex"
	"github.com/heartmarshall/recipediary/internal/search"
)

// Stats summarizes the collection.
type Stats struct {
	Total      int
	ByMealType map[domain.MealType]int
	Untyped    int
	Cuisines   int
	ExportSize int64
}

// Stats computes collection statistics, including the size of the export
// document the collection would produce.
func (s *Service) Stats() (Stats, error) {
	recipes := s.snapshot()

	st := Stats{
		Total:      len(recipes),
		ByMealType: make(map[domain.MealType]int, len(domain.MealTypes)),
		Cuisines:   len(search.CuisineOptions(recipes)),
	}
	for _, r := range recipes {
		if r.MealType == nil {
			st.Untyped++
			continue
		}
		st.ByMealType[*r.MealType]++
	}

	size, err := impex.ExportSize(recipes)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	st.ExportSize = size
	return st, nil
}
