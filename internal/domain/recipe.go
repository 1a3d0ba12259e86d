package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Recipe is a recipe as held in the client collection and written to exports.
// Optional attributes are nil when absent.
type Recipe struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	PrepTime     *int      `json:"prepTime,omitempty"`
	CookTime     *int      `json:"cookTime,omitempty"`
	TotalTime    *int      `json:"totalTime,omitempty"`
	Servings     *int      `json:"servings,omitempty"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	SourceURL    *string   `json:"sourceUrl,omitempty"`
	Tags         []string  `json:"tags"`
	Author       *string   `json:"author,omitempty"`
	Cuisine      *string   `json:"cuisine,omitempty"`
	MealType     *MealType `json:"mealType,omitempty"`
	DateAdded    time.Time `json:"dateAdded"`
	UserID       uuid.UUID `json:"userId"`
}

// Clone returns a deep copy so callers can never alias collection state.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = slices.Clone(r.Ingredients)
	c.Instructions = slices.Clone(r.Instructions)
	c.Tags = slices.Clone(r.Tags)
	c.PrepTime = clonePtr(r.PrepTime)
	c.CookTime = clonePtr(r.CookTime)
	c.TotalTime = clonePtr(r.TotalTime)
	c.Servings = clonePtr(r.Servings)
	c.ImageURL = clonePtr(r.ImageURL)
	c.SourceURL = clonePtr(r.SourceURL)
	c.Author = clonePtr(r.Author)
	c.Cuisine = clonePtr(r.Cuisine)
	c.MealType = clonePtr(r.MealType)
	return c
}

// CuisineName returns the cuisine or "" when absent.
func (r Recipe) CuisineName() string {
	if r.Cuisine == nil {
		return ""
	}
	return *r.Cuisine
}

// RecipeForm is the raw text input of the add/edit form.
// Every field is free text; empty means "not provided".
// Ingredients and Instructions are one item per line, Tags are comma separated.
type RecipeForm struct {
	Title        string
	Ingredients  string
	Instructions string
	PrepTime     string
	CookTime     string
	Servings     string
	ImageURL     string
	SourceURL    string
	Tags         string
	Author       string
	Cuisine      string
	MealType     string
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
