// Package transcode converts recipes between the form input, the client
// model and the snake_case row shape used by every store.
package transcode

import (
	"time"

	"github.com/google/uuid"
)

// WireRecipe is a recipe row as stored and returned by a recipe store.
// ID and CreatedAt are assigned by the store when left zero.
type WireRecipe struct {
	ID           uuid.UUID `db:"id"           json:"id"`
	UserID       uuid.UUID `db:"user_id"      json:"user_id"`
	Title        string    `db:"title"        json:"title"`
	Ingredients  []string  `db:"ingredients"  json:"ingredients"`
	Instructions []string  `db:"instructions" json:"instructions"`
	PrepTime     *int      `db:"prep_time"    json:"prep_time"`
	CookTime     *int      `db:"cook_time"    json:"cook_time"`
	TotalTime    *int      `db:"total_time"   json:"total_time"`
	Servings     *int      `db:"servings"     json:"servings"`
	ImageURL     *string   `db:"image_url"    json:"image_url"`
	SourceURL    *string   `db:"source_url"   json:"source_url"`
	Tags         []string  `db:"tags"         json:"tags"`
	Author       *string   `db:"author"       json:"author"`
	Cuisine      *string   `db:"cuisine"      json:"cuisine"`
	MealType     *string   `db:"meal_type"    json:"meal_type"`
	CreatedAt    time.Time `db:"created_at"   json:"created_at"`
}
