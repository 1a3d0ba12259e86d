package recipe

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/recipediary/internal/domain"
	"github.com/heartmarshall/recipediary/internal/transcode"
)

// Update replaces the editable fields of the signed-in user's recipe id.
// The recipe keeps its position in the collection, its owner and its
// creation time. A recipe owned by someone else fails with ErrNotFound.
func (s *Service) Update(ctx context.Context, id uuid.UUID, form domain.RecipeForm) (*domain.Recipe, error) {
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
	stored, err := s.store.Update(ctx, user.ID, id, row)
	done()
	if err != nil {
		return nil, s.remoteErr(ctx, "update", err)
	}

	updated := transcode.Decode(stored)
	updated.ID = id
	updated.UserID = user.ID

	applied := s.apply(user.ID, func(c []domain.Recipe) []domain.Recipe {
		out := make([]domain.Recipe, len(c))
		copy(out, c)
		for i := range out {
			if out[i].ID == id {
				updated.DateAdded = out[i].DateAdded
				out[i] = updated
				break
			}
		}
		return out
	})
	if !applied {
		s.discarded(ctx, "update")
	}

	s.log.InfoContext(ctx, "recipe updated", slog.String("recipe_id", id.String()))
	res := updated.Clone()
	return &res, nil
}
