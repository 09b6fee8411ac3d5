package ports

import (
	"context"

	"github.com/atendebot/atende/pkg/dialog"
)

// StackStore persists conversation stacks between turns. Persistence is the
// sole I/O boundary of a turn: load, mutate in memory, save-or-abort.
type StackStore interface {
	// Load retrieves the stack for a conversation.
	// Returns dialog.ErrStackNotFound if the conversation has no stack yet.
	Load(ctx context.Context, conversationID string) (*dialog.Stack, error)

	// Save persists the stack as one atomic write, guarded by an optimistic
	// check: it succeeds only if stack.Version matches the currently stored
	// version, and returns dialog.ErrVersionConflict otherwise. On success the
	// stored version is incremented and stack.Version is updated to match, so
	// a duplicate delivery of the same turn loses the race.
	Save(ctx context.Context, conversationID string, stack *dialog.Stack) error

	// Delete removes the stack for a conversation.
	Delete(ctx context.Context, conversationID string) error

	// List returns the conversation IDs with a persisted stack.
	List(ctx context.Context) ([]string, error)
}
