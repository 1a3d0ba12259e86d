// Package session tracks the signed-in identity and notifies observers
// when it changes.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/heartmarshall/recipediary/internal/domain"
)

// tokenStore persists the session token between runs.
type tokenStore interface {
	Load() (string, error)
	Save(token string) error
	Remove() error
}

type subscription struct {
	id int
	fn func(*domain.Identity)
}

// Session is the single source of truth for the current identity.
type Session struct {
	log    *slog.Logger
	tokens *TokenManager
	store  tokenStore

	mu      sync.Mutex
	current *domain.Identity
	subs    []subscription
	nextSub int
}

// New creates a signed-out Session.
func New(logger *slog.Logger, tokens *TokenManager, store tokenStore) *Session {
	return &Session{
		log:    logger.With("component", "session"),
		tokens: tokens,
		store:  store,
	}
}

// Current returns a copy of the signed-in identity, or nil.
func (s *Session) Current() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyIdentity(s.current)
}

// Subscribe registers fn to be called after every identity change, with the
// new identity or nil on sign-out. Observers run synchronously in
// registration order. The returned func removes the subscription.
func (s *Session) Subscribe(fn func(*domain.Identity)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// SignIn makes id the current identity and persists a session token for it.
func (s *Session) SignIn(ctx context.Context, id domain.Identity) (string, error) {
	token, err := s.tokens.Issue(id)
	if err != nil {
		return "", fmt.Errorf("session: sign in: %w", err)
	}
	if err := s.store.Save(token); err != nil {
		return "", fmt.Errorf("session: sign in: %w", err)
	}

	s.log.InfoContext(ctx, "signed in", slog.String("user_id", id.ID.String()))
	s.set(&id)
	return token, nil
}

// SignOut clears the current identity and forgets the stored token.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.store.Remove(); err != nil {
		return fmt.Errorf("session: sign out: %w", err)
	}

	s.log.InfoContext(ctx, "signed out")
	s.set(nil)
	return nil
}

// Restore reloads the identity from the stored token. It returns
// ErrUnauthenticated if no valid token is stored; an invalid or expired
// token is discarded.
func (s *Session) Restore(ctx context.Context) (*domain.Identity, error) {
	token, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("session: restore: %w", err)
	}
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	id, err := s.tokens.Parse(token)
	if err != nil {
		s.log.WarnContext(ctx, "discarding stored session token", slog.String("error", err.Error()))
		if rmErr := s.store.Remove(); rmErr != nil {
			err = errors.Join(err, rmErr)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	s.set(&id)
	return copyIdentity(&id), nil
}

// set swaps the current identity and notifies subscribers outside the lock.
// Nothing is published when the identity is unchanged.
func (s *Session) set(next *domain.Identity) {
	s.mu.Lock()
	if sameIdentity(s.current, next) {
		s.mu.Unlock()
		return
	}
	s.current = copyIdentity(next)
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(copyIdentity(next))
	}
}

func sameIdentity(a, b *domain.Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyIdentity(id *domain.Identity) *domain.Identity {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
