package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/heartmarshall/recipediary/internal/domain"
	"github.com/heartmarshall/recipediary/internal/transcode"
)

const tableName = "recipes"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var columns = []string{
	"id", "user_id", "title", "ingredients", "instructions",
	"prep_time", "cook_time", "total_time", "servings",
	"image_url", "source_url", "tags", "author", "cuisine", "meal_type",
	"created_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

// recipeRow is the on-disk shape: lists as JSON text, time as unix microseconds.
type recipeRow struct {
	ID           uuid.UUID  `db:"id"`
	UserID       uuid.UUID  `db:"user_id"`
	Title        string     `db:"title"`
	Ingredients  stringList `db:"ingredients"`
	Instructions stringList `db:"instructions"`
	PrepTime     *int       `db:"prep_time"`
	CookTime     *int       `db:"cook_time"`
	TotalTime    *int       `db:"total_time"`
	Servings     *int       `db:"servings"`
	ImageURL     *string    `db:"image_url"`
	SourceURL    *string    `db:"source_url"`
	Tags         stringList `db:"tags"`
	Author       *string    `db:"author"`
	Cuisine      *string    `db:"cuisine"`
	MealType     *string    `db:"meal_type"`
	CreatedAt    int64      `db:"created_at"`
}

func (r recipeRow) toWire() transcode.WireRecipe {
	return transcode.WireRecipe{
		ID:           r.ID,
		UserID:       r.UserID,
		Title:        r.Title,
		Ingredients:  []string(r.Ingredients),
		Instructions: []string(r.Instructions),
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		TotalTime:    r.TotalTime,
		Servings:     r.Servings,
		ImageURL:     r.ImageURL,
		SourceURL:    r.SourceURL,
		Tags:         []string(r.Tags),
		Author:       r.Author,
		Cuisine:      r.Cuisine,
		MealType:     r.MealType,
		CreatedAt:    time.UnixMicro(r.CreatedAt).UTC(),
	}
}

// Repo provides recipe persistence backed by a local SQLite file.
type Repo struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new recipe repository over an opened database.
func New(db *sql.DB) *Repo {
	return &Repo{db: db, now: time.Now}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByUser returns every recipe owned by userID, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]transcode.WireRecipe, error) {
	query, args, err := builder.
		Select(columns...).
		From(tableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "rowid DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []recipeRow
	if err := sqlscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, mapError(err, "recipes of user", userID)
	}

	out := make([]transcode.WireRecipe, len(rows))
	for i, row := range rows {
		out[i] = row.toWire()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert assigns ids (and creation times when missing) and stores rows in
// one transaction. Returns the stored rows in input order.
func (r *Repo) Insert(ctx context.Context, rows []transcode.WireRecipe) ([]transcode.WireRecipe, error) {
	out := make([]transcode.WireRecipe, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := r.now().UTC().Truncate(time.Microsecond)
	for _, row := range rows {
		row.ID = uuid.New()
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}

		query, args, err := builder.
			Insert(tableName).
			Columns(columns...).
			Values(insertValues(row)...).
			Suffix(returning).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build insert query: %w", err)
		}

		var stored recipeRow
		if err := sqlscan.Get(ctx, tx, &stored, query, args...); err != nil {
			return nil, mapError(err, "recipe", row.ID)
		}
		out = append(out, stored.toWire())
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return out, nil
}

// Update replaces the editable fields of recipe id owned by userID.
// Returns domain.ErrNotFound if no such recipe exists for that owner.
func (r *Repo) Update(ctx context.Context, userID, id uuid.UUID, row transcode.WireRecipe) (transcode.WireRecipe, error) {
	query, args, err := builder.
		Update(tableName).
		SetMap(map[string]any{
			"title":        row.Title,
			"ingredients":  stringList(row.Ingredients),
			"instructions": stringList(row.Instructions),
			"prep_time":    row.PrepTime,
			"cook_time":    row.CookTime,
			"total_time":   row.TotalTime,
			"servings":     row.Servings,
			"image_url":    row.ImageURL,
			"source_url":   row.SourceURL,
			"tags":         stringList(row.Tags),
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

	var updated []recipeRow
	if err := sqlscan.Select(ctx, r.db, &updated, query, args...); err != nil {
		return transcode.WireRecipe{}, mapError(err, "recipe", id)
	}
	if len(updated) == 0 {
		return transcode.WireRecipe{}, mapError(sql.ErrNoRows, "recipe", id)
	}
	return updated[0].toWire(), nil
}

// Delete removes recipe id owned by userID. Missing or foreign ids are a no-op.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query, args, err := builder.
		Delete(tableName).
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"user_id": userID}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapError(err, "recipe", id)
	}
	return nil
}

// DeleteAll removes every recipe owned by userID.
func (r *Repo) DeleteAll(ctx context.Context, userID uuid.UUID) (int, error) {
	query, args, err := builder.
		Delete(tableName).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete-all query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, "recipes of user", userID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func insertValues(row transcode.WireRecipe) []any {
	return []any{
		row.ID,
		row.UserID,
		row.Title,
		stringList(row.Ingredients),
		stringList(row.Instructions),
		row.PrepTime,
		row.CookTime,
		row.TotalTime,
		row.Servings,
		row.ImageURL,
		row.SourceURL,
		stringList(row.Tags),
		row.Author,
		row.Cuisine,
		row.MealType,
		row.CreatedAt.UnixMicro(),
	}
}

// mapError converts database/sql and SQLite errors to domain errors.
func mapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrAlreadyExists)
		case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, key, err)
}
