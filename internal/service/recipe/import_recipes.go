package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/recipediary/internal/domain"
	"github.com/heartmarshall/recipediary/internal/transcode"
)

// ImportMany stores records as new recipes of the signed-in user in one
// all-or-nothing batch. Supplied ids, owners and creation times are
// replaced. The stored recipes are put at the front of the collection in
// input order and returned.
func (s *Service) ImportMany(ctx context.Context, records []domain.Recipe) ([]domain.Recipe, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	if len(records) > s.cfg.MaxImportRecords {
		return nil, domain.NewValidationError("records",
			fmt.Sprintf("too many (max %d)", s.cfg.MaxImportRecords))
	}
	if len(records) == 0 {
		return []domain.Recipe{}, nil
	}

	// Creation times decrease strictly in input order so a later fetch
	// (newest first) returns the batch in the same order.
	base := s.now().UTC().Truncate(time.Microsecond)
	rows := make([]transcode.WireRecipe, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("%w: record %d: title is required", domain.ErrMalformedImport, i+1)
		}
		row := transcode.FromRecipe(r)
		row.UserID = user.ID
		row.CreatedAt = base.Add(-time.Duration(i) * time.Microsecond)
		rows[i] = row
	}

	ctx = opCtx(ctx, user.ID)

	done := s.track()
	inserted, err := s.store.Insert(ctx, rows)
	done()
	if err != nil {
		return nil, s.remoteErr(ctx, "import_many", err)
	}

	imported := decodeAll(inserted)
	if !s.apply(user.ID, func(c []domain.Recipe) []domain.Recipe {
		return prepend(c, imported...)
	}) {
		s.discarded(ctx, "import_many")
	}

	s.log.InfoContext(ctx, "recipes imported", slog.Int("count", len(imported)))
	return cloneAll(imported), nil
}
