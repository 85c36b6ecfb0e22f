package ledger

import (
	"fmt"
	"sort"

	"github.com/andy/ledgercraft/internal/domain"
)

// AddClient registers a new client
func (s *Store) AddClient(name, email, phone, address string) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := domain.NewClient(name, email, phone, address, s.now())
	if err := client.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client: %w", err)
	}
	s.ledger.Clients = append(s.ledger.Clients, client)
	if err := s.flush(); err != nil {
		return nil, err
	}
	cp := *client
	return &cp, nil
}

// UpdateClient edits a client's contact details. Client snapshots already
// embedded in saved invoices are left untouched.
func (s *Store) UpdateClient(id, name, email, phone, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := s.ledger.FindClient(id)
	if client == nil {
		return fmt.Errorf("%w: %s", ErrClientNotFound, id)
	}

	updated := *client
	updated.Name = name
	updated.Email = email
	updated.Phone = phone
	updated.Address = address
	updated.Touch(s.now())
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}
	*client = updated
	return s.flush()
}

// ListClients returns copies of all clients, most recently used first
func (s *Store) ListClients() []*domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Client, len(s.ledger.Clients))
	for i, c := range s.ledger.Clients {
		cp := *c
		out[i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastUsed.After(out[j].LastUsed)
	})
	return out
}

// GetClient returns a copy of the client with the given id
func (s *Store) GetClient(id string) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := s.ledger.FindClient(id)
	if client == nil {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, id)
	}
	cp := *client
	return &cp, nil
}

// AddProduct registers a new product
func (s *Store) AddProduct(name, description string, rate float64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := domain.NewProduct(name, description, rate, s.now())
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}
	s.ledger.Products = append(s.ledger.Products, product)
	if err := s.flush(); err != nil {
		return nil, err
	}
	cp := *product
	return &cp, nil
}

// UpdateProduct edits a product. Line items copied from it earlier keep
// the values they were added with.
func (s *Store) UpdateProduct(id, name, description string, rate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := s.ledger.FindProduct(id)
	if product == nil {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	updated := *product
	updated.Name = name
	updated.Description = description
	updated.Rate = rate
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}
	*product = updated
	return s.flush()
}

// ListProducts returns copies of all products in registration order
func (s *Store) ListProducts() []*domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Product, len(s.ledger.Products))
	for i, p := range s.ledger.Products {
		cp := *p
		out[i] = &cp
	}
	return out
}
