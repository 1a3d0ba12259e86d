package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/recipediary/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock
// ---------------------------------------------------------------------------

type tokenStoreMock struct {
	token     string
	LoadFunc  func() (string, error)
	SaveFunc  func(token string) error
	RemoveErr error
	removed   int
}

func (m *tokenStoreMock) Load() (string, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return m.token, nil
}

func (m *tokenStoreMock) Save(token string) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(token)
	}
	m.token = token
	return nil
}

func (m *tokenStoreMock) Remove() error {
	m.removed++
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.token = ""
	return nil
}

func newTestSession(store tokenStore) *Session {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, NewTokenManager(testSecret, "recipediary-test", time.Hour), store)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestSession_SignInNotifiesInOrder(t *testing.T) {
	t.Parallel()

	store := &tokenStoreMock{}
	s := newTestSession(store)
	id := testIdentity()

	var calls []string
	s.Subscribe(func(got *domain.Identity) {
		require.NotNil(t, got)
		assert.Equal(t, id, *got)
		calls = append(calls, "first")
	})
	s.Subscribe(func(*domain.Identity) { calls = append(calls, "second") })

	token, err := s.SignIn(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, token, store.token)
	assert.Equal(t, []string{"first", "second"}, calls)

	cur := s.Current()
	require.NotNil(t, cur)
	assert.Equal(t, id, *cur)
}

func TestSession_NoNotificationWithoutChange(t *testing.T) {
	t.Parallel()

	s := newTestSession(&tokenStoreMock{})
	id := testIdentity()

	n := 0
	s.Subscribe(func(*domain.Identity) { n++ })

	_, err := s.SignIn(context.Background(), id)
	require.NoError(t, err)
	_, err = s.SignIn(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, s.SignOut(context.Background()))
	require.NoError(t, s.SignOut(context.Background()))

	assert.Equal(t, 2, n)
	assert.Nil(t, s.Current())
}

func TestSession_SignOutPublishesNil(t *testing.T) {
	t.Parallel()

	store := &tokenStoreMock{}
	s := newTestSession(store)
	_, err := s.SignIn(context.Background(), testIdentity())
	require.NoError(t, err)

	var got []*domain.Identity
	s.Subscribe(func(id *domain.Identity) { got = append(got, id) })

	require.NoError(t, s.SignOut(context.Background()))
	require.Len(t, got, 1)
	assert.Nil(t, got[0])
	assert.Empty(t, store.token)
}

func TestSession_Unsubscribe(t *testing.T) {
	t.Parallel()

	s := newTestSession(&tokenStoreMock{})

	n := 0
	unsubscribe := s.Subscribe(func(*domain.Identity) { n++ })
	unsubscribe()
	unsubscribe()

	_, err := s.SignIn(context.Background(), testIdentity())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSession_SubscriberCanUnsubscribeDuringNotify(t *testing.T) {
	t.Parallel()

	s := newTestSession(&tokenStoreMock{})

	n := 0
	var unsubscribe func()
	unsubscribe = s.Subscribe(func(*domain.Identity) {
		n++
		unsubscribe()
	})

	_, err := s.SignIn(context.Background(), testIdentity())
	require.NoError(t, err)
	require.NoError(t, s.SignOut(context.Background()))
	assert.Equal(t, 1, n)
}

func TestSession_CurrentReturnsCopy(t *testing.T) {
	t.Parallel()

	s := newTestSession(&tokenStoreMock{})
	id := testIdentity()
	_, err := s.SignIn(context.Background(), id)
	require.NoError(t, err)

	s.Current().Name = "mutated"
	assert.Equal(t, id.Name, s.Current().Name)
}

func TestSession_SignIn_SaveError(t *testing.T) {
	t.Parallel()

	saveErr := errors.New("disk full")
	s := newTestSession(&tokenStoreMock{SaveFunc: func(string) error { return saveErr }})

	n := 0
	s.Subscribe(func(*domain.Identity) { n++ })

	_, err := s.SignIn(context.Background(), testIdentity())
	require.ErrorIs(t, err, saveErr)
	assert.Nil(t, s.Current())
	assert.Zero(t, n)
}

func TestSession_Restore(t *testing.T) {
	t.Parallel()

	store := &tokenStoreMock{}
	id := testIdentity()

	first := newTestSession(store)
	_, err := first.SignIn(context.Background(), id)
	require.NoError(t, err)

	second := newTestSession(store)
	var published *domain.Identity
	second.Subscribe(func(got *domain.Identity) { published = got })

	got, err := second.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, id, *got)
	require.NotNil(t, published)
	assert.Equal(t, id, *published)
}

func TestSession_Restore_NoToken(t *testing.T) {
	t.Parallel()

	s := newTestSession(&tokenStoreMock{})

	_, err := s.Restore(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Nil(t, s.Current())
}

func TestSession_Restore_InvalidTokenDiscarded(t *testing.T) {
	t.Parallel()

	store := &tokenStoreMock{token: "garbage"}
	s := newTestSession(store)

	_, err := s.Restore(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, 1, store.removed)
	assert.Empty(t, store.token)
	assert.Nil(t, s.Current())
}

func TestSession_Restore_LoadError(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("permission denied")
	s := newTestSession(&tokenStoreMock{LoadFunc: func() (string, error) { return "", loadErr }})

	_, err := s.Restore(context.Background())
	require.ErrorIs(t, err, loadErr)
	assert.NotErrorIs(t, err, domain.ErrUnauthenticated)
}
