package cart

import "sync"

// Store persists carts by opaque session id. The session id is minted by the
// HTTP layer (a cookie for guests); nothing in here assumes a logged-in user.
type Store interface {
	Load(sessionID string) (*Cart, error)
	Save(sessionID string, c *Cart) error
	Delete(sessionID string) error
}

// InMemoryStore is used for tests and local scenarios.
type InMemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]Item
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{carts: make(map[string][]Item)}
}

func (s *InMemoryStore) Load(sessionID string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.carts[sessionID]
	if !ok {
		return New(), nil
	}
	return FromItems(items), nil
}

func (s *InMemoryStore) Save(sessionID string, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = c.Items()
	return nil
}

func (s *InMemoryStore) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
