package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/RedDotz20/storeapi/internal/gateway"
	"github.com/RedDotz20/storeapi/pkg/kvstore"
)

// Registry hands out one Manager per session ID, creating them
// lazily. Creation runs the store probe, so a returning session with
// persisted state comes back authenticated.
type Registry struct {
	mu          sync.Mutex
	managers    map[string]*Manager
	store       kvstore.Store
	auth        gateway.Auth
	log         *slog.Logger
	signupDelay time.Duration
}

// NewRegistry builds an empty registry over the shared store and auth
// gateway.
func NewRegistry(store kvstore.Store, auth gateway.Auth, log *slog.Logger, signupDelay time.Duration) *Registry {
	return &Registry{
		managers:    make(map[string]*Manager),
		store:       store,
		auth:        auth,
		log:         log,
		signupDelay: signupDelay,
	}
}

// Get returns the session's manager, creating it on first use.
func (r *Registry) Get(ctx context.Context, sessionID string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.managers[sessionID]; ok {
		return m
	}
	m := NewManager(ctx, sessionID, r.store, r.auth, r.log, r.signupDelay)
	r.managers[sessionID] = m
	return m
}
