// Package session tracks authentication state per storefront session:
// a small state machine over login, signup, logout and a persisted
// token/profile pair in the key-value store.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/RedDotz20/storeapi/internal/domain"
	"github.com/RedDotz20/storeapi/internal/gateway"
	"github.com/RedDotz20/storeapi/pkg/kvstore"
)

// Persisted key suffixes, scoped per session.
const (
	tokenKey = "auth_token"
	userKey  = "auth_user"
)

// DefaultSignupDelay simulates the round trip of the signup backend,
// which does not exist yet.
const DefaultSignupDelay = 800 * time.Millisecond

// State is a snapshot of one session's authentication status.
type State struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	Error           string       `json:"error,omitempty"`
}

// Manager runs the auth state machine for a single session. All
// transitions hold the manager's lock, so concurrent calls interleave
// atomically but are otherwise not deduplicated.
type Manager struct {
	mu          sync.Mutex
	sessionID   string
	store       kvstore.Store
	auth        gateway.Auth
	log         *slog.Logger
	signupDelay time.Duration

	state State
}

// NewManager builds a manager for sessionID and probes the store: a
// persisted token and profile restore the authenticated state without
// a network call, anything less means anonymous.
func NewManager(ctx context.Context, sessionID string, store kvstore.Store, auth gateway.Auth, log *slog.Logger, signupDelay time.Duration) *Manager {
	if signupDelay <= 0 {
		signupDelay = DefaultSignupDelay
	}
	m := &Manager{
		sessionID:   sessionID,
		store:       store,
		auth:        auth,
		log:         log,
		signupDelay: signupDelay,
		state:       State{IsLoading: true},
	}
	m.restore(ctx)
	return m
}

func (m *Manager) key(suffix string) string {
	return m.sessionID + ":" + suffix
}

// restore trusts whatever the store holds. Expiry and validity of the
// persisted token are not checked here.
func (m *Manager) restore(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, hasToken := m.store.GetString(ctx, m.key(tokenKey))
	var user domain.User
	hasUser := m.store.GetJSON(ctx, m.key(userKey), &user)

	if hasToken && hasUser {
		m.state = State{User: &user, IsAuthenticated: true}
		return
	}
	m.state = State{}
}

// State returns a snapshot of the current auth state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *Manager) snapshot() State {
	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Token returns the persisted auth token, empty when anonymous.
func (m *Manager) Token(ctx context.Context) string {
	token, _ := m.store.GetString(ctx, m.key(tokenKey))
	return token
}

// Login exchanges credentials through the gateway. Success persists
// the token and profile; failure lands in the error state and the
// error is also returned to the caller.
func (m *Manager) Login(ctx context.Context, creds domain.LoginCredentials) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.IsLoading = true
	m.state.Error = ""

	token, user, err := m.auth.Login(ctx, creds)
	if err != nil {
		m.state = State{Error: err.Error()}
		return m.snapshot(), err
	}

	m.store.SetString(ctx, m.key(tokenKey), token)
	m.store.SetJSON(ctx, m.key(userKey), user)
	m.state = State{User: &user, IsAuthenticated: true}

	m.log.Info("session authenticated", "session_id", m.sessionID, "user_id", user.ID)
	return m.snapshot(), nil
}

// Signup fabricates an account locally: there is no signup backend
// yet, so after a simulated delay the user is minted with a random id
// and a mock token, persisted and signed in.
func (m *Manager) Signup(ctx context.Context, creds domain.SignupCredentials) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.IsLoading = true
	m.state.Error = ""

	select {
	case <-time.After(m.signupDelay):
	case <-ctx.Done():
		m.state = State{Error: ctx.Err().Error()}
		return m.snapshot(), ctx.Err()
	}

	now := time.Now()
	user := domain.User{
		ID:        100 + rand.Intn(1000),
		Username:  creds.Username,
		Email:     creds.Email,
		Role:      "user",
		CreatedAt: now,
		UpdatedAt: now,
	}
	token := fmt.Sprintf("mock_token_%d_%d", user.ID, now.UnixMilli())

	m.store.SetString(ctx, m.key(tokenKey), token)
	m.store.SetJSON(ctx, m.key(userKey), user)
	m.state = State{User: &user, IsAuthenticated: true}

	m.log.Info("session signed up", "session_id", m.sessionID, "user_id", user.ID)
	return m.snapshot(), nil
}

// Logout drops the persisted keys and returns to anonymous. No
// network call is involved.
func (m *Manager) Logout(ctx context.Context) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Remove(ctx, m.key(tokenKey))
	m.store.Remove(ctx, m.key(userKey))
	m.state = State{}
	return m.snapshot()
}

// ClearError drops the error message without touching authentication.
func (m *Manager) ClearError() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Error = ""
	return m.snapshot()
}
