// Package impex reads and writes recipe collection documents.
package impex

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/heartmarshall/recipediary/internal/domain"
)

const exportPrefix = "recipe-diary-export-"

// ExportFileName returns the export document name for the UTC date of now.
func ExportFileName(now time.Time) string {
	return exportPrefix + now.UTC().Format(time.DateOnly) + ".json"
}

// WriteExport writes recipes as a pretty-printed JSON array.
// Nil lists are written as empty arrays.
func WriteExport(w io.Writer, recipes []domain.Recipe) error {
	out := make([]domain.Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = r
		out[i].Ingredients = emptyIfNil(r.Ingredients)
		out[i].Instructions = emptyIfNil(r.Instructions)
		out[i].Tags = emptyIfNil(r.Tags)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// ExportSize returns the size in bytes of the export document for recipes.
func ExportSize(recipes []domain.Recipe) (int64, error) {
	var cw countingWriter
	if err := WriteExport(&cw, recipes); err != nil {
		return 0, err
	}
	return int64(cw), nil
}

type countingWriter int64

func (c *countingWriter) Write(p []byte) (int, error) {
	*c += countingWriter(len(p))
	return len(p), nil
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
