package recipe

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/recipediary/internal/domain"
	"github.com/heartmarshall/recipediary/internal/transcode"
)

// FetchAll replaces the collection with userID's stored recipes, newest
// first. Overlapping calls for the same user share one store call; each
// caller stops waiting when its own ctx ends, and the shared call is only
// canceled by Close. The result is dropped if the signed-in user changed
// while it was loading.
func (s *Service) FetchAll(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domain.ErrUnauthenticated
	}
	ctx = opCtx(ctx, userID)

	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	done := s.track()
	ch := s.fetches.DoChan(userID.String(), func() (any, error) {
		callCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		defer cancel()
		stop := context.AfterFunc(s.bg, cancel)
		defer stop()
		return s.store.ListByUser(callCtx, userID)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
		done()
	case <-ctx.Done():
		done()
		return s.remoteErr(ctx, "fetch_all", ctx.Err())
	}
	if res.Err != nil {
		return s.remoteErr(ctx, "fetch_all", res.Err)
	}
	shared := res.Shared

	recipes := decodeAll(res.Val.([]transcode.WireRecipe))

	s.mu.Lock()
	stale := s.gen != gen || s.current == nil || s.current.ID != userID
	if !stale {
		s.collection = recipes
	}
	s.mu.Unlock()

	if stale {
		s.discarded(ctx, "fetch_all")
		return nil
	}

	s.log.DebugContext(ctx, "recipes fetched",
		slog.Int("count", len(recipes)),
		slog.Bool("shared", shared),
	)
	return nil
}

// Sync reloads the signed-in user's recipes.
func (s *Service) Sync(ctx context.Context) error {
	user, err := s.requireUser()
	if err != nil {
		return err
	}
	return s.FetchAll(ctx, user.ID)
}
