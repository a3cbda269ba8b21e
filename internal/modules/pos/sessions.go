package pos

import "sync"

// sessionStore keeps one live cart per cashier. Carts exist only in memory;
// an abandoned terminal session simply starts from an empty cart.
type sessionStore struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func newSessionStore() *sessionStore {
	return &sessionStore{carts: make(map[string]*Cart)}
}

func (s *sessionStore) cart(cashierID string) *Cart {
	s.mu.RLock()
	c, ok := s.carts[cashierID]
	s.mu.RUnlock()
	if ok {
		return c
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok = s.carts[cashierID]; ok {
		return c
	}
	c = NewCart()
	s.carts[cashierID] = c
	return c
}
