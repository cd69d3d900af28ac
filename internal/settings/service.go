package settings

import "fmt"

// Service orchestrates settings access.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get never fails: if the store is unreachable the built-in defaults are
// returned so pricing keeps working while the problem is investigated.
func (s *Service) Get() Settings {
	current, err := s.repo.Get()
	if err != nil {
		fmt.Printf("warning: could not load settings, using defaults: %v\n", err)
		return Defaults()
	}
	return current
}

func (s *Service) Update(next Settings) (Settings, error) {
	return s.repo.Update(next)
}
