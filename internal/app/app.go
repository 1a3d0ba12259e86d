// Package app wires configuration, the recipe store, the session and the
// recipe service together.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/recipediary/internal/adapter/memory"
	"github.com/heartmarshall/recipediary/internal/adapter/postgres"
	pgrecipe "github.com/heartmarshall/recipediary/internal/adapter/postgres/recipe"
	"github.com/heartmarshall/recipediary/internal/adapter/sqlite"
	"github.com/heartmarshall/recipediary/internal/config"
	"github.com/heartmarshall/recipediary/internal/domain"
	"github.com/heartmarshall/recipediary/internal/service/recipe"
	"github.com/heartmarshall/recipediary/internal/session"
	"github.com/heartmarshall/recipediary/internal/transcode"
)

// App holds the long-lived components of a running client.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Session *session.Session
	Recipes *recipe.Service

	closers []func() error
}

// New builds the application from cfg. Logs go to logOut. The stored
// session, if any, is restored before the recipe service starts, so a
// signed-in user's recipes begin loading right away.
func New(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	logger := NewLogger(logOut, cfg.Log)
	a := &App{Config: cfg, Log: logger}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	tokens := session.NewTokenManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TokenTTL)
	a.Session = session.New(logger, tokens, session.NewTokenFile(cfg.Session.TokenPath))
	if _, err := a.Session.Restore(ctx); err != nil {
		if !errors.Is(err, domain.ErrUnauthenticated) {
			a.Close()
			return nil, fmt.Errorf("app: %w", err)
		}
		logger.DebugContext(ctx, "no session restored", slog.String("error", err.Error()))
	}

	a.Recipes = recipe.NewService(logger, store, a.Session, cfg.Recipes)
	a.closers = append(a.closers, func() error {
		a.Recipes.Close()
		return nil
	})

	logger.DebugContext(ctx, "application started",
		slog.String("version", BuildVersion()),
		slog.String("store", cfg.Store.Backend),
	)
	return a, nil
}

// recipeStore is the store contract shared by every backend.
type recipeStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]transcode.WireRecipe, error)
	Insert(ctx context.Context, rows []transcode.WireRecipe) ([]transcode.WireRecipe, error)
	Update(ctx context.Context, userID, id uuid.UUID, row transcode.WireRecipe) (transcode.WireRecipe, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int, error)
}

func (a *App) openStore(ctx context.Context) (recipeStore, error) {
	cfg := a.Config
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database, a.Log)
		if err != nil {
			return nil, fmt.Errorf("app: connect postgres: %w", err)
		}
		a.closers = append(a.closers, func() error {
			pool.Close()
			return nil
		})
		if cfg.Store.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, a.Log); err != nil {
				return nil, fmt.Errorf("app: %w", err)
			}
		}
		return pgrecipe.New(pool, postgres.NewTxManager(pool), cfg.Recipes.ImportChunkSize), nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite, cfg.Store.AutoMigrate, a.Log)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return sqlite.New(db), nil

	case config.BackendMemory:
		return memory.New(), nil
	}
	return nil, fmt.Errorf("app: unknown store backend %q", cfg.Store.Backend)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
