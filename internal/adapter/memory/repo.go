// Package memory implements an in-process recipe store. It satisfies the
// same contract as the SQL stores and backs tests and ephemeral sessions.
package memory

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/recipediary/internal/domain"
	"github.com/heartmarshall/recipediary/internal/transcode"
)

// Repo is a goroutine-safe map of recipe rows keyed by owner.
type Repo struct {
	mu   sync.RWMutex
	rows map[uuid.UUID][]transcode.WireRecipe // newest first
	now  func() time.Time
}

// New creates an empty store.
func New() *Repo {
	return &Repo{
		rows: make(map[uuid.UUID][]transcode.WireRecipe),
		now:  time.Now,
	}
}

// ListByUser returns copies of every recipe owned by userID, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]transcode.WireRecipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.rows[userID]
	out := make([]transcode.WireRecipe, len(src))
	for i, row := range src {
		out[i] = cloneRow(row)
	}
	return out, nil
}

// Insert assigns ids (and creation times when missing) and stores rows.
// Validation runs over the whole batch first so a bad row stores nothing.
func (r *Repo) Insert(ctx context.Context, rows []transcode.WireRecipe) ([]transcode.WireRecipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := validateRow(row); err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	out := make([]transcode.WireRecipe, len(rows))
	for i, row := range rows {
		row = cloneRow(row)
		row.ID = uuid.New()
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		out[i] = row
	}

	touched := make(map[uuid.UUID]struct{})
	for _, row := range out {
		r.rows[row.UserID] = append(r.rows[row.UserID], cloneRow(row))
		touched[row.UserID] = struct{}{}
	}
	for userID := range touched {
		sortNewestFirst(r.rows[userID])
	}

	for i := range out {
		out[i] = cloneRow(out[i])
	}
	return out, nil
}

// Update replaces the editable fields of recipe id owned by userID.
func (r *Repo) Update(ctx context.Context, userID, id uuid.UUID, row transcode.WireRecipe) (transcode.WireRecipe, error) {
	if err := ctx.Err(); err != nil {
		return transcode.WireRecipe{}, err
	}
	if err := validateRow(row); err != nil {
		return transcode.WireRecipe{}, fmt.Errorf("recipe %s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	owned := r.rows[userID]
	idx := slices.IndexFunc(owned, func(w transcode.WireRecipe) bool { return w.ID == id })
	if idx < 0 {
		return transcode.WireRecipe{}, fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}

	updated := cloneRow(row)
	updated.ID = owned[idx].ID
	updated.UserID = owned[idx].UserID
	updated.CreatedAt = owned[idx].CreatedAt
	owned[idx] = updated

	return cloneRow(updated), nil
}

// Delete removes recipe id owned by userID. Missing or foreign ids are a no-op.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[userID] = slices.DeleteFunc(r.rows[userID], func(w transcode.WireRecipe) bool { return w.ID == id })
	return nil
}

// DeleteAll removes every recipe owned by userID.
func (r *Repo) DeleteAll(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.rows[userID])
	delete(r.rows, userID)
	return n, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// validateRow mirrors the NOT NULL and CHECK constraints of the postgres
// schema, including the integer column range.
func validateRow(row transcode.WireRecipe) error {
	if row.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(row.Title) == "" {
		return fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	for _, c := range []struct {
		column string
		value  *int
		min    int
	}{
		{"prep_time", row.PrepTime, 0},
		{"cook_time", row.CookTime, 0},
		{"total_time", row.TotalTime, 0},
		{"servings", row.Servings, 1},
	} {
		if c.value != nil && (*c.value < c.min || *c.value > math.MaxInt32) {
			return fmt.Errorf("%s %d out of range: %w", c.column, *c.value, domain.ErrValidation)
		}
	}
	if row.MealType != nil && !domain.MealType(*row.MealType).IsValid() {
		return fmt.Errorf("meal_type %q is not recognized: %w", *row.MealType, domain.ErrValidation)
	}
	return nil
}

func sortNewestFirst(rows []transcode.WireRecipe) {
	slices.SortStableFunc(rows, func(a, b transcode.WireRecipe) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

func cloneRow(w transcode.WireRecipe) transcode.WireRecipe {
	c := w
	c.Ingredients = cloneList(w.Ingredients)
	c.Instructions = cloneList(w.Instructions)
	c.Tags = cloneList(w.Tags)
	c.PrepTime = clonePtr(w.PrepTime)
	c.CookTime = clonePtr(w.CookTime)
	c.TotalTime = clonePtr(w.TotalTime)
	c.Servings = clonePtr(w.Servings)
	c.ImageURL = clonePtr(w.ImageURL)
	c.SourceURL = clonePtr(w.SourceURL)
	c.Author = clonePtr(w.Author)
	c.Cuisine = clonePtr(w.Cuisine)
	c.MealType = clonePtr(w.MealType)
	return c
}

func cloneList(items []string) []string {
	if items == nil {
		return []string{}
	}
	return slices.Clone(items)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
