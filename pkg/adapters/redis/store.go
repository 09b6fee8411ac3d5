// Package redis provides the durable StackStore and the distributed locker
// backed by Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atendebot/atende/pkg/dialog"
	backend "github.com/redis/go-redis/v9"
)

// saveScript performs the optimistic compare-and-set: the stack payload and
// its version token are written together or not at all.
var saveScript = backend.NewScript(`
local cur = redis.call("GET", KEYS[2])
if not cur then cur = "0" end
if cur ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[2])
redis.call("SET", KEYS[2], ARGV[3])
if tonumber(ARGV[4]) > 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[4])
	redis.call("PEXPIRE", KEYS[2], ARGV[4])
end
return 1
`)

// Store implements ports.StackStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets the expiration for conversation stacks.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithPrefix sets the key prefix for conversation stacks.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New creates a Redis store from connection parameters.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "atende:conv:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(conversationID string) string {
	return s.prefix + conversationID
}

func (s *Store) versionKey(conversationID string) string {
	return s.prefix + "ver:" + conversationID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the stack atomically, guarded by the version token.
func (s *Store) Save(ctx context.Context, conversationID string, stack *dialog.Stack) error {
	next := stack.Version + 1
	record := *stack
	record.Version = next
	data, err := json.Marshal(&record)
	if err != nil {
		return fmt.Errorf("failed to marshal stack: %w", err)
	}

	keys := []string{s.key(conversationID), s.versionKey(conversationID)}
	args := []any{stack.Version, data, next, s.ttl.Milliseconds()}
	res, err := saveScript.Run(ctx, s.client, keys, args...).Int()
	if err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	if res == 0 {
		return fmt.Errorf("conversation %q: %w", conversationID, dialog.ErrVersionConflict)
	}

	// Index membership, score = expiry instant for lazy cleanup on List.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	if err := s.client.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: conversationID}).Err(); err != nil {
		return fmt.Errorf("failed to index conversation: %w", err)
	}

	stack.Version = next
	return nil
}

// Load retrieves the stack for a conversation.
func (s *Store) Load(ctx context.Context, conversationID string) (*dialog.Stack, error) {
	val, err := s.client.Get(ctx, s.key(conversationID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, dialog.ErrStackNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var stack dialog.Stack
	if err := json.Unmarshal([]byte(val), &stack); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stack: %w", err)
	}
	return &stack, nil
}

// Delete removes the conversation's stack and version token.
func (s *Store) Delete(ctx context.Context, conversationID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(conversationID), s.versionKey(conversationID))
	pipe.ZRem(ctx, s.indexKey(), conversationID)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns active conversations, pruning expired index entries lazily.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired conversations: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
