package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/recipediary/internal/config"
	"github.com/heartmarshall/recipediary/internal/domain"
	"github.com/heartmarshall/recipediary/internal/transcode"
	"github.com/heartmarshall/recipediary/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type recipeStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]transcode.WireRecipe, error)
	Insert(ctx context.Context, rows []transcode.WireRecipe) ([]transcode.WireRecipe, error)
	Update(ctx context.Context, userID, id uuid.UUID, row transcode.WireRecipe) (transcode.WireRecipe, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int, error)
}

type identitySource interface {
	Current() *domain.Identity
	Subscribe(fn func(*domain.Identity)) func()
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service keeps the signed-in user's recipe collection in sync with the
// recipe store. The collection is newest first and is only changed after
// the store confirms an operation.
type Service struct {
	log      *slog.Logger
	store    recipeStore
	sessions identitySource
	cfg      config.RecipesConfig
	now      func() time.Time

	mu         sync.RWMutex
	collection []domain.Recipe
	current    *domain.Identity
	gen        uint64
	closed     bool

	inflight atomic.Int32
	fetches  singleflight.Group

	bg          context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	unsubscribe func()
}

// NewService creates the service and subscribes it to identity changes.
// If a user is already signed in, their recipes are fetched in the background.
func NewService(
	logger *slog.Logger,
	store recipeStore,
	sessions identitySource,
	cfg config.RecipesConfig,
) *Service {
	bg, cancel := context.WithCancel(context.Background())
	s := &Service{
		log:      logger.With("service", "recipe"),
		store:    store,
		sessions: sessions,
		cfg:      cfg,
		now:      time.Now,
		bg:       bg,
		cancel:   cancel,
	}
	s.unsubscribe = sessions.Subscribe(s.onIdentityChange)
	s.onIdentityChange(sessions.Current())
	return s
}

// Close unsubscribes from identity changes, cancels background fetches and
// waits for them to return.
func (s *Service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.unsubscribe()
	s.cancel()
	s.wg.Wait()
}

// onIdentityChange drops the collection of the previous user and starts
// loading the new user's recipes. Re-publishing the same user is a no-op.
func (s *Service) onIdentityChange(id *domain.Identity) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if sameUser(s.current, id) {
		s.current = copyIdentity(id)
		s.mu.Unlock()
		return
	}
	s.current = copyIdentity(id)
	s.collection = nil
	s.gen++
	if id == nil {
		s.mu.Unlock()
		s.log.Debug("identity cleared")
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	userID := id.ID
	go func() {
		defer s.wg.Done()
		ctx := ctxutil.WithUserID(ctxutil.EnsureRequestID(s.bg), userID)
		// Failures are logged by FetchAll.
		_ = s.FetchAll(ctx, userID)
	}()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// requireUser returns the signed-in identity or ErrUnauthenticated.
func (s *Service) requireUser() (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return *s.current, nil
}

// opCtx tags ctx with correlation attributes for logging.
func opCtx(ctx context.Context, userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(ctxutil.EnsureRequestID(ctx), userID)
}

// track marks a remote call in flight until the returned func is called.
func (s *Service) track() func() {
	s.inflight.Add(1)
	return func() { s.inflight.Add(-1) }
}

// apply replaces the collection with fn's result if userID is still the
// signed-in user. fn must return a new slice and leave its argument intact.
func (s *Service) apply(userID uuid.UUID, fn func([]domain.Recipe) []domain.Recipe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.ID != userID {
		return false
	}
	s.collection = fn(s.collection)
	return true
}

// remoteErr logs a failed store call and wraps it as ErrRemote. A canceled
// or expired context is the caller giving up, not a store failure: it is
// logged at debug and returned without ErrRemote.
func (s *Service) remoteErr(ctx context.Context, op string, err error) error {
	attrs := append([]any{slog.String("op", op), slog.String("error", err.Error())}, ctxutil.LogAttrs(ctx)...)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.log.DebugContext(ctx, "recipe store call abandoned", attrs...)
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.ErrorContext(ctx, "recipe store call failed", attrs...)
	return fmt.Errorf("%w: %s: %w", domain.ErrRemote, op, err)
}

func (s *Service) discarded(ctx context.Context, op string) {
	attrs := append([]any{slog.String("op", op)}, ctxutil.LogAttrs(ctx)...)
	s.log.DebugContext(ctx, "result discarded after identity change", attrs...)
}

func sameUser(a, b *domain.Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

func copyIdentity(id *domain.Identity) *domain.Identity {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func cloneAll(recipes []domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = r.Clone()
	}
	return out
}

func decodeAll(rows []transcode.WireRecipe) []domain.Recipe {
	out := make([]domain.Recipe, len(rows))
	for i, row := range rows {
		out[i] = transcode.Decode(row)
	}
	return out
}
