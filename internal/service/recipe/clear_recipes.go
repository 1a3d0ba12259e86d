package recipe

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/recipediary/internal/domain"
)

// ClearAll deletes every recipe of the signed-in user and returns how many
// were removed from the store.
func (s *Service) ClearAll(ctx context.Context) (int, error) {
	user, err := s.requireUser()
	if err != nil {
		return 0, err
	}
	ctx = opCtx(ctx, user.ID)

	done := s.track()
	n, err := s.store.DeleteAll(ctx, user.ID)
	done()
	if err != nil {
		return 0, s.remoteErr(ctx, "clear_all", err)
	}

	if !s.apply(user.ID, func([]domain.Recipe) []domain.Recipe {
		return []domain.Recipe{}
	}) {
		s.discarded(ctx, "clear_all")
	}

	s.log.InfoContext(ctx, "recipes cleared", slog.Int("count", n))
	return n, nil
}
