package recipe

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/recipediary/internal/domain"
)

// Delete removes the signed-in user's recipe id. Deleting a recipe that
// does not exist or belongs to someone else changes nothing.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.requireUser()
	if err != nil {
		return err
	}
	ctx = opCtx(ctx, user.ID)

	done := s.track()
	err = s.store.Delete(ctx, user.ID, id)
	done()
	if err != nil {
		return s.remoteErr(ctx, "delete", err)
	}

	if !s.apply(user.ID, func(c []domain.Recipe) []domain.Recipe {
		out := make([]domain.Recipe, 0, len(c))
		for _, r := range c {
			if r.ID != id {
				out = append(out, r)
			}
		}
		return out
	}) {
		s.discarded(ctx, "delete")
	}

	s.log.InfoContext(ctx, "recipe deleted", slog.String("recipe_id", id.String()))
	return nil
}
