package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates turn processing across replicas, so that two
// concurrently delivered turns for the same conversation are serialized
// instead of racing the load-mutate-save cycle.
type DistributedLocker interface {
	// Lock acquires a lock for the key (the conversation ID). It blocks until
	// the lock is acquired or the context is canceled. The returned UnlockFunc
	// MUST be called to release the lock; the TTL bounds orphaned locks.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
