package config

import (
	"time"
)

// Store backends.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config is the root application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Session  SessionConfig  `yaml:"session"`
	Recipes  RecipesConfig  `yaml:"recipes"`
	Export   ExportConfig   `yaml:"export"`
	Log      LogConfig      `yaml:"log"`
}

// StoreConfig selects and tunes the recipe store backend.
type StoreConfig struct {
	Backend     string `yaml:"backend"      env:"STORE_BACKEND"      env-default:"sqlite"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"STORE_AUTO_MIGRATE" env-default:"true"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// DSN is required only for the postgres backend (checked in Validate).
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SQLiteConfig holds settings of the local file-backed store.
type SQLiteConfig struct {
	Path        string        `yaml:"path"         env:"SQLITE_PATH"         env-default:"recipediary.db"`
	BusyTimeout time.Duration `yaml:"busy_timeout" env:"SQLITE_BUSY_TIMEOUT" env-default:"5s"`
}

// SessionConfig holds session token settings.
type SessionConfig struct {
	Secret    string        `yaml:"secret"     env:"SESSION_SECRET"     env-required:"true"`
	Issuer    string        `yaml:"issuer"     env:"SESSION_ISSUER"     env-default:"recipediary"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"SESSION_TOKEN_TTL"  env-default:"720h"`
	TokenPath string        `yaml:"token_path" env:"SESSION_TOKEN_PATH" env-default:".recipediary/session.jwt"`
}

// RecipesConfig holds recipe sync settings.
type RecipesConfig struct {
	ImportChunkSize  int `yaml:"import_chunk_size"  env:"RECIPES_IMPORT_CHUNK_SIZE"  env-default:"500"`
	MaxImportRecords int `yaml:"max_import_records" env:"RECIPES_MAX_IMPORT_RECORDS" env-default:"5000"`
}

// ExportConfig holds export settings.
type ExportConfig struct {
	Dir string `yaml:"dir" env:"EXPORT_DIR" env-default:"."`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
