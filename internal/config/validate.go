package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))

	switch c.Store.Backend {
	case BackendPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the %s backend", BackendPostgres)
		}
		if c.Database.MaxConns < 1 {
			return fmt.Errorf("database.max_conns must be >= 1 (got %d)", c.Database.MaxConns)
		}
		if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("database.min_conns must be within [0, max_conns] (got %d)", c.Database.MinConns)
		}
	case BackendSQLite:
		if strings.TrimSpace(c.SQLite.Path) == "" {
			return fmt.Errorf("sqlite.path is required for the %s backend", BackendSQLite)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("store.backend must be one of %s, %s, %s (got %q)",
			BackendPostgres, BackendSQLite, BackendMemory, c.Store.Backend)
	}

	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("session.secret must be at least 32 characters (got %d)", len(c.Session.Secret))
	}
	if c.Session.TokenTTL <= 0 {
		return fmt.Errorf("session.token_ttl must be > 0 (got %s)", c.Session.TokenTTL)
	}

	if c.Recipes.ImportChunkSize <= 0 {
		return fmt.Errorf("recipes.import_chunk_size must be > 0 (got %d)", c.Recipes.ImportChunkSize)
	}
	if c.Recipes.MaxImportRecords <= 0 {
		return fmt.Errorf("recipes.max_import_records must be > 0 (got %d)", c.Recipes.MaxImportRecords)
	}

	return nil
}
