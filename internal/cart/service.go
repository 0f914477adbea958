// Package cart keeps per-session shopping carts in memory. Carts are
// an ephemeral, session-scoped concern; nothing survives a restart.
package cart

import (
	"sync"

	"github.com/RedDotz20/storeapi/internal/domain"
)

// Service holds one cart per session and applies cart transitions
// atomically per session.
type Service struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

// NewService returns an empty cart registry.
func NewService() *Service {
	return &Service{carts: make(map[string]domain.Cart)}
}

// Get returns a snapshot of the session's cart, empty if none exists.
func (s *Service) Get(sessionID string) domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	return domain.EmptyCart()
}

// AddItem adds quantity of item to the session's cart and returns the
// updated snapshot.
func (s *Service) AddItem(sessionID string, item domain.CartItem, quantity int) domain.Cart {
	return s.mutate(sessionID, func(c domain.Cart) domain.Cart {
		return c.AddItem(item, quantity)
	})
}

// RemoveItem drops the item from the session's cart.
func (s *Service) RemoveItem(sessionID string, itemID int) domain.Cart {
	return s.mutate(sessionID, func(c domain.Cart) domain.Cart {
		return c.RemoveItem(itemID)
	})
}

// UpdateQuantity sets the item's quantity, removing it at zero or below.
func (s *Service) UpdateQuantity(sessionID string, itemID, quantity int) domain.Cart {
	return s.mutate(sessionID, func(c domain.Cart) domain.Cart {
		return c.UpdateQuantity(itemID, quantity)
	})
}

// Clear resets the session's cart to the canonical empty state.
func (s *Service) Clear(sessionID string) domain.Cart {
	return s.mutate(sessionID, func(domain.Cart) domain.Cart {
		return domain.EmptyCart()
	})
}

func (s *Service) mutate(sessionID string, fn func(domain.Cart) domain.Cart) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.carts[sessionID]
	if !ok {
		current = domain.EmptyCart()
	}
	next := fn(current)
	s.carts[sessionID] = next
	return next
}
