package orders

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore implements Store in memory. Used by chat mode and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	orders   map[int64]Order
	products map[int64]Product
	nextID   int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:   make(map[int64]Order),
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// ListOrders returns all orders sorted by ID.
func (s *MemoryStore) ListOrders(ctx context.Context) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetOrder returns the order with the given ID.
func (s *MemoryStore) GetOrder(ctx context.Context, id int64) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

// CreateOrder assigns an ID and stores the order.
func (s *MemoryStore) CreateOrder(ctx context.Context, o Order) (Order, error) {
	if err := o.Validate(); err != nil {
		return Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.nextID
	s.nextID++
	s.orders[o.ID] = o
	return o, nil
}

// UpdateOrder replaces an existing order.
func (s *MemoryStore) UpdateOrder(ctx context.Context, o Order) (Order, error) {
	if err := o.Validate(); err != nil {
		return Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; !ok {
		return Order{}, ErrNotFound
	}
	s.orders[o.ID] = o
	return o, nil
}

// DeleteOrder removes an order.
func (s *MemoryStore) DeleteOrder(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

// OrdersByClient filters orders by client name substring, case-insensitively.
func (s *MemoryStore) OrdersByClient(ctx context.Context, name string) ([]Order, error) {
	needle := strings.ToLower(strings.TrimSpace(name))

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Order
	for _, o := range s.orders {
		if strings.Contains(strings.ToLower(o.ClientName), needle) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListProducts returns the catalog sorted by ID.
func (s *MemoryStore) ListProducts(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ProductByName matches a product name case-insensitively, preferring exact
// matches and accepting an unambiguous partial match.
func (s *MemoryStore) ProductByName(ctx context.Context, name string) (Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return Product{}, err
	}
	return matchProduct(products, name)
}

// AddProduct inserts a catalog entry, assigning an ID when absent.
func (s *MemoryStore) AddProduct(p Product) Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	}
	s.products[p.ID] = p
	return p
}

// matchProduct is shared by store implementations.
func matchProduct(products []Product, name string) (Product, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Product{}, ErrNotFound
	}

	var partial []Product
	for _, p := range products {
		lower := strings.ToLower(p.Name)
		if lower == needle {
			return p, nil
		}
		if strings.Contains(lower, needle) {
			partial = append(partial, p)
		}
	}
	if len(partial) == 1 {
		return partial[0], nil
	}
	return Product{}, ErrNotFound
}
