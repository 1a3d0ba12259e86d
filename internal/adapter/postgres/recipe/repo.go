// Package recipe implements the recipe store on PostgreSQL.
// Every statement is scoped by owner so one user can never touch
// another user's rows.
package recipe

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/recipediary/internal/adapter/postgres"
	"github.com/heartmarshall/recipediary/internal/transcode"
)

const tableName = "recipes"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var selectColumns = []string{
	"id", "user_id", "title", "ingredients", "instructions",
	"prep_time", "cook_time", "total_time", "servings",
	"image_url", "source_url", "tags", "author", "cuisine", "meal_type",
	"created_at",
}

var insertColumns = []string{
	"user_id", "title", "ingredients", "instructions",
	"prep_time", "cook_time", "total_time", "servings",
	"image_url", "source_url", "tags", "author", "cuisine", "meal_type",
	"created_at",
}

// A single statement may bind at most 65535 parameters.
var maxChunkSize = 65535 / len(insertColumns)

var returning = "RETURNING " + strings.Join(selectColumns, ", ")

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repo provides recipe persistence backed by PostgreSQL.
type Repo struct {
	db        postgres.Querier
	tx        txManager
	chunkSize int
}

// New creates a new recipe repository. Batches larger than chunkSize are
// written with several statements inside one transaction.
func New(db postgres.Querier, tx txManager, chunkSize int) *Repo {
	if chunkSize <= 0 || chunkSize > maxChunkSize {
		chunkSize = maxChunkSize
	}
	return &Repo{db: db, tx: tx, chunkSize: chunkSize}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByUser returns every recipe owned by userID, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]transcode.WireRecipe, error) {
	query, args, err := builder.
		Select(selectColumns...).
		From(tableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows := []transcode.WireRecipe{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "recipes of user", userID)
	}
	return rows, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert stores rows and returns them as persisted, in input order.
// The batch is all-or-nothing.
func (r *Repo) Insert(ctx context.Context, rows []transcode.WireRecipe) ([]transcode.WireRecipe, error) {
	if len(rows) == 0 {
		return []transcode.WireRecipe{}, nil
	}
	if len(rows) <= r.chunkSize {
		return r.insertChunk(ctx, rows)
	}

	var out []transcode.WireRecipe
	err := r.tx.RunInTx(ctx, func(txCtx context.Context) error {
		out = make([]transcode.WireRecipe, 0, len(rows))
		for start := 0; start < len(rows); start += r.chunkSize {
			end := min(start+r.chunkSize, len(rows))
			inserted, err := r.insertChunk(txCtx, rows[start:end])
			if err != nil {
				return err
			}
			out = append(out, inserted...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// insertChunk writes one multi-row INSERT. Postgres returns RETURNING rows
// in VALUES order for a plain INSERT ... VALUES.
func (r *Repo) insertChunk(ctx context.Context, rows []transcode.WireRecipe) ([]transcode.WireRecipe, error) {
	ins := builder.Insert(tableName).Columns(insertColumns...)
	for _, row := range rows {
		ins = ins.Values(insertValues(row)...)
	}

	query, args, err := ins.Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	out := make([]transcode.WireRecipe, 0, len(rows))
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "recipes", fmt.Sprintf("batch of %d", len(rows)))
	}
	if len(out) != len(rows) {
		return nil, fmt.Errorf("insert recipes: expected %d rows, got %d", len(rows), len(out))
	}
	return out, nil
}

// Update replaces the editable fields of recipe id owned by userID.
// Returns domain.ErrNotFound if no such recipe exists for that owner.
// Owner and creation time are never changed.
func (r *Repo) Update(ctx context.Context, userID, id uuid.UUID, row transcode.WireRecipe) (transcode.WireRecipe, error) {
	query, args, err := builder.
		Update(tableName).
		SetMap(map[string]any{
			"title":        row.Title,
			"ingredients":  nonNil(row.Ingredients),
			"instructions": nonNil(row.Instructions),
			"prep_time":    row.PrepTime,
			"cook_time":    row.CookTime,
			"total_time":   row.TotalTime,
			"servings":     row.Servings,
			"image_url":    row.ImageURL,
			"source_url":   row.SourceURL,
			"tags":         nonNil(row.Tags),
			"author":       row.Author,
			"cuisine":      row.Cuisine,
			"meal_type":    row.MealType,
		}).
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"user_id": userID}}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return transcode.WireRecipe{}, fmt.Errorf("build update query: %w", err)
	}

	var updated []transcode.WireRecipe
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &updated, query, args...); err != nil {
		return transcode.WireRecipe{}, postgres.MapError(err, "recipe", id)
	}
	if len(updated) == 0 {
		return transcode.WireRecipe{}, postgres.MapError(pgx.ErrNoRows, "recipe", id)
	}
	return updated[0], nil
}

// Delete removes recipe id owned by userID. Deleting a missing or foreign
// recipe is a no-op.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query, args, err := builder.
		Delete(tableName).
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"user_id": userID}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "recipe", id)
	}
	return nil
}

// DeleteAll removes every recipe owned by userID and returns how many
// rows were deleted.
func (r *Repo) DeleteAll(ctx context.Context, userID uuid.UUID) (int, error) {
	query, args, err := builder.
		Delete(tableName).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete-all query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "recipes of user", userID)
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func insertValues(row transcode.WireRecipe) []any {
	var createdAt any = sq.Expr("DEFAULT")
	if !row.CreatedAt.IsZero() {
		createdAt = row.CreatedAt
	}
	return []any{
		row.UserID,
		row.Title,
		nonNil(row.Ingredients),
		nonNil(row.Instructions),
		row.PrepTime,
		row.CookTime,
		row.TotalTime,
		row.Servings,
		row.ImageURL,
		row.SourceURL,
		nonNil(row.Tags),
		row.Author,
		row.Cuisine,
		row.MealType,
		createdAt,
	}
}

// text[] columns are NOT NULL; a nil slice would be sent as NULL.
func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
