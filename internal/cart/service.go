package cart

import (
	"github.com/awwalu253-ctrl/captain-signature/internal/product"
)

// Service orchestrates cart mutations against the session store. It captures
// the product's price, name and image at add time; the catalog is not
// consulted again until checkout.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(sessionID string) (*Cart, error) {
	return s.store.Load(sessionID)
}

func (s *Service) Add(sessionID string, p product.Product, quantity int) (*Cart, error) {
	c, err := s.store.Load(sessionID)
	if err != nil {
		return nil, err
	}

	image := ""
	if p.Image != nil {
		image = *p.Image
	}
	c.Add(p.ID, quantity, p.Price, p.Name, image)

	if err := s.store.Save(sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(sessionID string, productID, quantity int) (*Cart, error) {
	c, err := s.store.Load(sessionID)
	if err != nil {
		return nil, err
	}

	c.Update(productID, quantity)

	if err := s.store.Save(sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Remove(sessionID string, productID int) (*Cart, error) {
	c, err := s.store.Load(sessionID)
	if err != nil {
		return nil, err
	}

	c.Remove(productID)

	if err := s.store.Save(sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Clear(sessionID string) error {
	return s.store.Delete(sessionID)
}
