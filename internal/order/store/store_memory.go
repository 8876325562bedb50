package store

import (
	"context"
	"fmt"
	"sync"

	"searchorder/internal/order"
	"searchorder/pkg/platform/sentinel"
)

// InMemoryOrderStore keeps wizards for the life of the process.
type InMemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]*order.Wizard
}

func New() *InMemoryOrderStore {
	return &InMemoryOrderStore{
		orders: make(map[string]*order.Wizard),
	}
}

func (s *InMemoryOrderStore) Save(_ context.Context, w *order.Wizard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[w.ID()] = w
	return nil
}

func (s *InMemoryOrderStore) FindByID(_ context.Context, id string) (*order.Wizard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if w, ok := s.orders[id]; ok {
		return w, nil
	}
	return nil, fmt.Errorf("order %s: %w", id, sentinel.ErrNotFound)
}

func (s *InMemoryOrderStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return fmt.Errorf("order %s: %w", id, sentinel.ErrNotFound)
	}
	delete(s.orders, id)
	return nil
}

// Len reports how many orders are held.
func (s *InMemoryOrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
