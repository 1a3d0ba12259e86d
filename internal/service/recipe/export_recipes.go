package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/heartmarshall/recipediary/internal/impex"
)

// ExportAll writes the current collection into dir as a dated export
// document and returns its path. The collection is not changed.
func (s *Service) ExportAll(ctx context.Context, dir string) (string, error) {
	recipes := s.Recipes()
	path := filepath.Join(dir, impex.ExportFileName(s.now()))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".recipe-export-*")
	if err != nil {
		return "", fmt.Errorf("export: create file: %w", err)
	}
	defer func() {
		// No-op once renamed.
		_ = os.Remove(tmp.Name())
	}()

	if err := impex.WriteExport(tmp, recipes); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("export: close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("export: chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("export: rename: %w", err)
	}

	s.log.InfoContext(ctx, "recipes exported",
		slog.String("path", path),
		slog.Int("count", len(recipes)),
	)
	return path, nil
}
