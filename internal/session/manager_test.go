package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedDotz20/storeapi/internal/domain"
	apperrors "github.com/RedDotz20/storeapi/pkg/errors"
	"github.com/RedDotz20/storeapi/pkg/kvstore"
)

type fakeAuth struct {
	calls atomic.Int32
	token string
	user  domain.User
	err   error
}

func (f *fakeAuth) Login(ctx context.Context, creds domain.LoginCredentials) (string, domain.User, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", domain.User{}, f.err
	}
	return f.token, f.user, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestManager(t *testing.T, store kvstore.Store, auth *fakeAuth) *Manager {
	t.Helper()
	return NewManager(context.Background(), "sess-1", store, auth, discardLogger(), time.Millisecond)
}

func TestManager_StartsAnonymousWithEmptyStore(t *testing.T) {
	m := newTestManager(t, kvstore.NewMemory(discardLogger()), &fakeAuth{})

	state := m.State()
	assert.False(t, state.IsAuthenticated)
	assert.False(t, state.IsLoading)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Error)
}

func TestManager_LoginSuccessPersistsAndAuthenticates(t *testing.T) {
	store := kvstore.NewMemory(discardLogger())
	auth := &fakeAuth{token: "tok-123", user: domain.User{ID: 7, Username: "johnd"}}
	m := newTestManager(t, store, auth)

	state, err := m.Login(context.Background(), domain.LoginCredentials{Identifier: "johnd", Password: "pw"})
	require.NoError(t, err)

	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "johnd", state.User.Username)

	token, ok := store.GetString(context.Background(), "sess-1:auth_token")
	assert.True(t, ok)
	assert.Equal(t, "tok-123", token)
	assert.True(t, store.Has(context.Background(), "sess-1:auth_user"))
}

func TestManager_LoginFailureSetsErrorAndReturnsIt(t *testing.T) {
	auth := &fakeAuth{err: apperrors.Unauthorized("invalid credentials")}
	m := newTestManager(t, kvstore.NewMemory(discardLogger()), auth)

	state, err := m.Login(context.Background(), domain.LoginCredentials{Identifier: "x", Password: "y"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	assert.False(t, state.IsAuthenticated)
	assert.False(t, state.IsLoading)
	assert.Contains(t, state.Error, "invalid credentials")
}

func TestManager_ClearErrorKeepsAuthStatus(t *testing.T) {
	auth := &fakeAuth{err: apperrors.Unauthorized("invalid credentials")}
	m := newTestManager(t, kvstore.NewMemory(discardLogger()), auth)

	_, _ = m.Login(context.Background(), domain.LoginCredentials{})
	state := m.ClearError()

	assert.Empty(t, state.Error)
	assert.False(t, state.IsAuthenticated)
}

func TestManager_RestoreFromPersistedStateWithoutNetwork(t *testing.T) {
	store := kvstore.NewMemory(discardLogger())
	auth := &fakeAuth{token: "tok-123", user: domain.User{ID: 7, Username: "johnd"}}

	first := newTestManager(t, store, auth)
	_, err := first.Login(context.Background(), domain.LoginCredentials{Identifier: "johnd", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, int32(1), auth.calls.Load())

	// A fresh manager over the same store trusts the persisted state.
	second := newTestManager(t, store, auth)
	state := second.State()

	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "johnd", state.User.Username)
	assert.Equal(t, int32(1), auth.calls.Load())
}

func TestManager_TokenAloneIsNotEnoughToRestore(t *testing.T) {
	store := kvstore.NewMemory(discardLogger())
	store.SetString(context.Background(), "sess-1:auth_token", "orphan")

	m := newTestManager(t, store, &fakeAuth{})
	assert.False(t, m.State().IsAuthenticated)
}

func TestManager_SignupFabricatesUserAndToken(t *testing.T) {
	store := kvstore.NewMemory(discardLogger())
	m := newTestManager(t, store, &fakeAuth{})

	state, err := m.Signup(context.Background(), domain.SignupCredentials{
		Username: "newbie",
		Email:    "new@example.com",
		Password: "secret12",
	})
	require.NoError(t, err)

	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "newbie", state.User.Username)
	assert.GreaterOrEqual(t, state.User.ID, 100)
	assert.Less(t, state.User.ID, 1100)

	token, ok := store.GetString(context.Background(), "sess-1:auth_token")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(token, "mock_token_"))
}

func TestManager_SignupCancelledContext(t *testing.T) {
	m := NewManager(context.Background(), "sess-1", kvstore.NewMemory(discardLogger()), &fakeAuth{}, discardLogger(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Signup(ctx, domain.SignupCredentials{Username: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManager_LogoutClearsStoreAndState(t *testing.T) {
	store := kvstore.NewMemory(discardLogger())
	auth := &fakeAuth{token: "tok", user: domain.User{ID: 1}}
	m := newTestManager(t, store, auth)

	_, err := m.Login(context.Background(), domain.LoginCredentials{})
	require.NoError(t, err)

	state := m.Logout(context.Background())
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.False(t, store.Has(context.Background(), "sess-1:auth_token"))
	assert.False(t, store.Has(context.Background(), "sess-1:auth_user"))
}

func TestRegistry_ReturnsSameManagerPerSession(t *testing.T) {
	reg := NewRegistry(kvstore.NewMemory(discardLogger()), &fakeAuth{}, discardLogger(), time.Millisecond)

	a := reg.Get(context.Background(), "a")
	b := reg.Get(context.Background(), "b")

	assert.Same(t, a, reg.Get(context.Background(), "a"))
	assert.NotSame(t, a, b)
}
