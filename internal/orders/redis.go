package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	backend "github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis: one JSON record per key plus a ZSET
// index keyed by record ID.
type RedisStore struct {
	client *backend.Client
	prefix string
}

// NewRedisStore creates a Redis-backed order store.
func NewRedisStore(client *backend.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "atende:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) orderKey(id int64) string   { return fmt.Sprintf("%spedido:%d", s.prefix, id) }
func (s *RedisStore) orderIndex() string         { return s.prefix + "pedido:index" }
func (s *RedisStore) orderSeq() string           { return s.prefix + "pedido:seq" }
func (s *RedisStore) productKey(id int64) string { return fmt.Sprintf("%sproduto:%d", s.prefix, id) }
func (s *RedisStore) productIndex() string       { return s.prefix + "produto:index" }
func (s *RedisStore) productSeq() string         { return s.prefix + "produto:seq" }

func (s *RedisStore) loadOrders(ctx context.Context, ids []string) ([]Order, error) {
	out := make([]Order, 0, len(ids))
	for _, raw := range ids {
		val, err := s.client.Get(ctx, s.prefix+"pedido:"+raw).Result()
		if err == backend.Nil {
			continue // index entry outlived the record
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get order: %w", err)
		}
		var o Order
		if err := json.Unmarshal([]byte(val), &o); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order: %w", err)
		}
		out = append(out, o)
	}
	return out, nil
}

// ListOrders returns all orders in ID order.
func (s *RedisStore) ListOrders(ctx context.Context) ([]Order, error) {
	ids, err := s.client.ZRange(ctx, s.orderIndex(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return s.loadOrders(ctx, ids)
}

// GetOrder returns the order with the given ID.
func (s *RedisStore) GetOrder(ctx context.Context, id int64) (Order, error) {
	val, err := s.client.Get(ctx, s.orderKey(id)).Result()
	if err == backend.Nil {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	var o Order
	if err := json.Unmarshal([]byte(val), &o); err != nil {
		return Order{}, fmt.Errorf("failed to unmarshal order: %w", err)
	}
	return o, nil
}

// CreateOrder assigns the next sequence ID and stores the order.
func (s *RedisStore) CreateOrder(ctx context.Context, o Order) (Order, error) {
	if err := o.Validate(); err != nil {
		return Order{}, err
	}

	id, err := s.client.Incr(ctx, s.orderSeq()).Result()
	if err != nil {
		return Order{}, fmt.Errorf("failed to allocate order id: %w", err)
	}
	o.ID = id
	if err := s.writeOrder(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// UpdateOrder replaces an existing order.
func (s *RedisStore) UpdateOrder(ctx context.Context, o Order) (Order, error) {
	if err := o.Validate(); err != nil {
		return Order{}, err
	}
	if _, err := s.GetOrder(ctx, o.ID); err != nil {
		return Order{}, err
	}
	if err := s.writeOrder(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (s *RedisStore) writeOrder(ctx context.Context, o Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.orderKey(o.ID), data, 0)
	pipe.ZAdd(ctx, s.orderIndex(), backend.Z{Score: float64(o.ID), Member: fmt.Sprint(o.ID)})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// DeleteOrder removes an order and its index entry.
func (s *RedisStore) DeleteOrder(ctx context.Context, id int64) error {
	if _, err := s.GetOrder(ctx, id); err != nil {
		return err
	}
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.orderKey(id))
	pipe.ZRem(ctx, s.orderIndex(), fmt.Sprint(id))
	_, err := pipe.Exec(ctx)
	return err
}

// OrdersByClient filters orders by client name substring, case-insensitively.
func (s *RedisStore) OrdersByClient(ctx context.Context, name string) ([]Order, error) {
	all, err := s.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(name))
	var out []Order
	for _, o := range all {
		if strings.Contains(strings.ToLower(o.ClientName), needle) {
			out = append(out, o)
		}
	}
	return out, nil
}

// ListProducts returns the catalog in ID order.
func (s *RedisStore) ListProducts(ctx context.Context) ([]Product, error) {
	ids, err := s.client.ZRange(ctx, s.productIndex(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	out := make([]Product, 0, len(ids))
	for _, raw := range ids {
		val, err := s.client.Get(ctx, s.prefix+"produto:"+raw).Result()
		if err == backend.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get product: %w", err)
		}
		var p Product
		if err := json.Unmarshal([]byte(val), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}

// ProductByName matches a product name case-insensitively.
func (s *RedisStore) ProductByName(ctx context.Context, name string) (Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return Product{}, err
	}
	return matchProduct(products, name)
}

// AddProduct stores a catalog entry, allocating an ID when absent.
func (s *RedisStore) AddProduct(ctx context.Context, p Product) (Product, error) {
	if p.ID == 0 {
		id, err := s.client.Incr(ctx, s.productSeq()).Result()
		if err != nil {
			return Product{}, fmt.Errorf("failed to allocate product id: %w", err)
		}
		p.ID = id
	}
	data, err := json.Marshal(p)
	if err != nil {
		return Product{}, fmt.Errorf("failed to marshal product: %w", err)
	}
	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.productKey(p.ID), data, 0)
	pipe.ZAdd(ctx, s.productIndex(), backend.Z{Score: float64(p.ID), Member: fmt.Sprint(p.ID)})
	if _, err := pipe.Exec(ctx); err != nil {
		return Product{}, fmt.Errorf("failed to save product: %w", err)
	}
	return p, nil
}
