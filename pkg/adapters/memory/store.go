// Package memory provides an in-process StackStore, used by the local chat
// mode and by tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/atendebot/atende/pkg/dialog"
)

// Store implements ports.StackStore in memory. Safe for concurrent use.
// Stacks are kept as serialized JSON so save/load round-trips behave exactly
// like a durable store.
type Store struct {
	mu       sync.RWMutex
	data     map[string][]byte
	versions map[string]int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		data:     make(map[string][]byte),
		versions: make(map[string]int64),
	}
}

// Save persists the stack under the optimistic version check.
func (s *Store) Save(ctx context.Context, conversationID string, stack *dialog.Stack) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current := s.versions[conversationID]; stack.Version != current {
		return fmt.Errorf("conversation %q at version %d, save at %d: %w",
			conversationID, current, stack.Version, dialog.ErrVersionConflict)
	}

	next := stack.Version + 1
	record := *stack
	record.Version = next
	data, err := json.Marshal(&record)
	if err != nil {
		return fmt.Errorf("failed to marshal stack: %w", err)
	}

	s.data[conversationID] = data
	s.versions[conversationID] = next
	stack.Version = next
	return nil
}

// Load retrieves the stack for a conversation.
func (s *Store) Load(ctx context.Context, conversationID string) (*dialog.Stack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[conversationID]
	if !ok {
		return nil, dialog.ErrStackNotFound
	}

	var stack dialog.Stack
	if err := json.Unmarshal(data, &stack); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stack: %w", err)
	}
	return &stack, nil
}

// Delete removes the stack and its version token.
func (s *Store) Delete(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, conversationID)
	delete(s.versions, conversationID)
	return nil
}

// List returns the conversations with a persisted stack.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
