// Package search derives the filtered recipe list and the option lists of
// the list view from a collection snapshot.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/heartmarshall/recipediary/internal/domain"
)

// Filter returns the recipes matching every criterion of f, in input order.
//
// Query is a case-insensitive substring match against the title, every
// ingredient line and every tag. MealType and Cuisine must match exactly.
// Empty criteria match everything.
func Filter(recipes []domain.Recipe, f domain.RecipeFilter) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(recipes))
	if f.IsZero() {
		return append(out, recipes...)
	}

	m := newMatcher(f.Query)
	for _, r := range recipes {
		if f.MealType != "" && (r.MealType == nil || *r.MealType != f.MealType) {
			continue
		}
		if f.Cuisine != "" && r.CuisineName() != f.Cuisine {
			continue
		}
		if !m.match(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CuisineOptions returns the distinct non-empty cuisines in first-seen order.
func CuisineOptions(recipes []domain.Recipe) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range recipes {
		c := r.CuisineName()
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// MealTypeOptions returns every selectable meal type in display order.
func MealTypeOptions() []domain.MealType {
	out := make([]domain.MealType, len(domain.MealTypes))
	copy(out, domain.MealTypes)
	return out
}

// matcher folds case once per query. A cases.Caser is stateful, so each
// Filter call gets its own.
type matcher struct {
	fold  cases.Caser
	query string
}

func newMatcher(query string) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.query = m.fold.String(query)
	return m
}

func (m *matcher) match(r domain.Recipe) bool {
	if m.query == "" {
		return true
	}
	if m.contains(r.Title) {
		return true
	}
	for _, ing := range r.Ingredients {
		if m.contains(ing) {
			return true
		}
	}
	for _, tag := range r.Tags {
		if m.contains(tag) {
			return true
		}
	}
	return false
}

func (m *matcher) contains(s string) bool {
	return strings.Contains(m.fold.String(s), m.query)
}
