package settings

import "sync"

// Repository provides access to the single settings row.
type Repository interface {
	Get() (Settings, error)
	Update(s Settings) (Settings, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	current Settings
}

func NewInMemoryRepository(initial Settings) *InMemoryRepository {
	if initial.ID == 0 {
		initial.ID = 1
	}
	return &InMemoryRepository{current: initial}
}

func (r *InMemoryRepository) Get() (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, nil
}

func (r *InMemoryRepository) Update(s Settings) (Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.current.ID
	r.current = s
	return r.current, nil
}
