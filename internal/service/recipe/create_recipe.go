package recipe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/recipediary/internal/domain"
	"github.com/heartmarshall/recipediary/internal/transcode"
)

// Create stores a new recipe from form input and puts the stored version at
// the front of the collection.
func (s *Service) Create(ctx context.Context, form domain.RecipeForm) (*domain.Recipe, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	if err := validateForm(form); err != nil {
		return nil, err
	}

	row := transcode.Encode(form)
	row.UserID = user.ID
	ctx = opCtx(ctx, user.ID)

	done := s.track()
	rows, err := s.store.Insert(ctx, []transcode.WireRecipe{row})
	done()
	if err != nil {
		return nil, s.remoteErr(ctx, "create", err)
	}
	if len(rows) != 1 {
		return nil, s.remoteErr(ctx, "create", fmt.Errorf("store returned %d rows for 1 insert", len(rows)))
	}

	created := transcode.Decode(rows[0])
	if !s.apply(user.ID, func(c []domain.Recipe) []domain.Recipe {
		return prepend(c, created)
	}) {
		s.discarded(ctx, "create")
	}

	s.log.InfoContext(ctx, "recipe created", slog.String("recipe_id", created.ID.String()))
	out := created.Clone()
	return &out, nil
}

// prepend returns a new slice with items in front of c.
func prepend(c []domain.Recipe, items ...domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(items)+len(c))
	out = append(out, items...)
	return append(out, c...)
}
