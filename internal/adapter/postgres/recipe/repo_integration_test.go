package recipe_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/recipediary/internal/adapter/postgres"
	"github.com/heartmarshall/recipediary/internal/adapter/postgres/recipe"
	"github.com/heartmarshall/recipediary/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/recipediary/internal/domain"
	"github.com/heartmarshall/recipediary/internal/transcode"
)

func newIntegrationRepo(t *testing.T, chunkSize int) (*recipe.Repo, func(uuid.UUID) int) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	repo := recipe.New(pool, postgres.NewTxManager(pool), chunkSize)
	return repo, func(userID uuid.UUID) int { return testhelper.CountRecipes(t, pool, userID) }
}

func TestIntegration_InsertListUpdateDelete(t *testing.T) {
	repo, count := newIntegrationRepo(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	row := transcode.Encode(domain.RecipeForm{
		Title:        "Toast",
		Ingredients:  "bread\nbutter",
		Instructions: "toast it\nspread butter",
		PrepTime:     "2",
		CookTime:     "3",
		Tags:         "quick, easy",
		MealType:     "breakfast",
	})
	row.UserID = userID

	inserted, err := repo.Insert(ctx, []transcode.WireRecipe{row})
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.NotEqual(t, uuid.Nil, inserted[0].ID)
	assert.False(t, inserted[0].CreatedAt.IsZero())
	assert.Equal(t, []string{"bread", "butter"}, inserted[0].Ingredients)
	assert.Equal(t, 5, *inserted[0].TotalTime)

	listed, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, inserted[0].ID, listed[0].ID)

	edit := row
	edit.Title = "Better Toast"
	edit.Servings = nil
	updated, err := repo.Update(ctx, userID, inserted[0].ID, edit)
	require.NoError(t, err)
	assert.Equal(t, "Better Toast", updated.Title)
	assert.Equal(t, inserted[0].CreatedAt, updated.CreatedAt)
	assert.Equal(t, userID, updated.UserID)

	// Another owner can neither update nor delete.
	stranger := uuid.New()
	_, err = repo.Update(ctx, stranger, inserted[0].ID, edit)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, stranger, inserted[0].ID))
	assert.Equal(t, 1, count(userID))

	require.NoError(t, repo.Delete(ctx, userID, inserted[0].ID))
	assert.Equal(t, 0, count(userID))
}

func TestIntegration_ListOrderNewestFirst(t *testing.T) {
	repo, _ := newIntegrationRepo(t, 0)
	ctx := context.Background()
	userID := uuid.New()
	base := time.Now().UTC().Truncate(time.Microsecond)

	rows := []transcode.WireRecipe{
		{UserID: userID, Title: "old", CreatedAt: base.Add(-time.Hour)},
		{UserID: userID, Title: "new", CreatedAt: base},
	}
	_, err := repo.Insert(ctx, rows)
	require.NoError(t, err)

	listed, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "new", listed[0].Title)
	assert.Equal(t, "old", listed[1].Title)
	assert.Equal(t, []string{}, listed[0].Tags)
}

func TestIntegration_ChunkedInsertIsAtomic(t *testing.T) {
	repo, count := newIntegrationRepo(t, 2)
	ctx := context.Background()
	userID := uuid.New()

	rows := []transcode.WireRecipe{
		{UserID: userID, Title: "a"},
		{UserID: userID, Title: "b"},
		{UserID: userID, Title: "   "}, // violates the title check
	}
	_, err := repo.Insert(ctx, rows)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, count(userID))

	rows[2].Title = "c"
	inserted, err := repo.Insert(ctx, rows)
	require.NoError(t, err)
	require.Len(t, inserted, 3)
	assert.Equal(t, "c", inserted[2].Title)
	assert.Equal(t, 3, count(userID))
}

func TestIntegration_DeleteAllScopedByOwner(t *testing.T) {
	repo, count := newIntegrationRepo(t, 0)
	ctx := context.Background()
	mine, theirs := uuid.New(), uuid.New()

	_, err := repo.Insert(ctx, []transcode.WireRecipe{
		{UserID: mine, Title: "a"}, {UserID: mine, Title: "b"}, {UserID: theirs, Title: "c"},
	})
	require.NoError(t, err)

	n, err := repo.DeleteAll(ctx, mine)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, count(mine))
	assert.Equal(t, 1, count(theirs))
}
