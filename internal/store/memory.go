package store

import (
	"context"
	"sort"
	"sync"

	"github.com/edvin/catalog/internal/model"
)

// MemoryStore keeps products in a map guarded by a RWMutex. It is the default
// backend and the one used in handler tests.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[int64]model.Product
	nextID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[int64]model.Product),
		nextID:   1,
	}
}

func (s *MemoryStore) FindAll(_ context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (*model.Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (s *MemoryStore) Save(_ context.Context, p *model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *p
	if saved.ID == 0 {
		saved.ID = s.nextID
	}
	if saved.ID >= s.nextID {
		s.nextID = saved.ID + 1
	}
	s.products[saved.ID] = saved
	return &saved, nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
	return nil
}
