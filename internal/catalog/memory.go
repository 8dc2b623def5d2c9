package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/ariefcatur/go-storefront/internal/apperr"
)

type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]Product
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{products: map[string]Product{}}
}

// clone detaches the reviews slice so callers never share backing arrays.
func clone(p Product) Product {
	p.Reviews = append([]Review{}, p.Reviews...)
	return p
}

func (m *MemoryStore) Insert(_ context.Context, p Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = clone(p)
	return nil
}

func (m *MemoryStore) FindByID(_ context.Context, id string) (Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return Product{}, apperr.NotFound("Product not found")
	}
	return clone(p), nil
}

func (m *MemoryStore) List(_ context.Context) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, p Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return apperr.NotFound("Product not found")
	}
	m.products[p.ID] = clone(p)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return apperr.NotFound("Product not found")
	}
	delete(m.products, id)
	return nil
}

func (m *MemoryStore) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = map[string]Product{}
	return nil
}
