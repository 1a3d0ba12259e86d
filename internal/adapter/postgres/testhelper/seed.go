package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedRecipe inserts a minimal recipe for userID directly via SQL and
// returns its id. createdAt controls ordering in list queries.
func SeedRecipe(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, title string, createdAt time.Time) uuid.UUID {
	t.Helper()

	if title == "" {
		title = "Recipe " + uniqueSuffix()
	}

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO recipes (user_id, title, ingredients, instructions, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		userID, title, []string{"salt"}, []string{"season"}, createdAt.UTC().Truncate(time.Microsecond),
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedRecipe insert: %v", err)
	}
	return id
}

// CountRecipes returns how many rows userID owns.
func CountRecipes(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM recipes WHERE user_id = $1`, userID,
	).Scan(&n); err != nil {
		t.Fatalf("testhelper: CountRecipes: %v", err)
	}
	return n
}
