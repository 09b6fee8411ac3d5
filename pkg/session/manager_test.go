package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atendebot/atende/pkg/adapters/memory"
	"github.com/atendebot/atende/pkg/dialog"
	"github.com/atendebot/atende/pkg/ports"
)

func TestWithLockSerializesSameConversation(t *testing.T) {
	m := NewManager(memory.NewStore())
	ctx := context.Background()

	var active, maxActive int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.WithLock(ctx, "conv", func(ctx context.Context) error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive, "turns on the same conversation must not overlap")
}

func TestWithLockAllowsDistinctConversations(t *testing.T) {
	m := NewManager(memory.NewStore())
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = m.WithLock(ctx, "conv-a", func(ctx context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	// conv-b proceeds while conv-a's lock is held.
	done := make(chan struct{})
	go func() {
		_ = m.WithLock(ctx, "conv-b", func(ctx context.Context) error {
			close(done)
			return nil
		})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("distinct conversations should not block each other")
	}
	close(release)
}

func TestLockEntriesGarbageCollected(t *testing.T) {
	m := NewManager(memory.NewStore())
	require.NoError(t, m.WithLock(context.Background(), "conv", func(ctx context.Context) error {
		return nil
	}))

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.locks)
}

type fakeLocker struct {
	mu       sync.Mutex
	locked   []string
	unlocked []string
	err      error
}

func (l *fakeLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.locked = append(l.locked, key)
	return func(ctx context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.unlocked = append(l.unlocked, key)
		return nil
	}, nil
}

func TestWithLockUsesDistributedLocker(t *testing.T) {
	locker := &fakeLocker{}
	m := NewManager(memory.NewStore(), WithLocker(locker))

	require.NoError(t, m.WithLock(context.Background(), "conv", func(ctx context.Context) error {
		return nil
	}))

	assert.Equal(t, []string{"conv"}, locker.locked)
	assert.Equal(t, []string{"conv"}, locker.unlocked)
}

func TestWithLockPropagatesLockFailure(t *testing.T) {
	locker := &fakeLocker{err: errors.New("lock busy")}
	m := NewManager(memory.NewStore(), WithLocker(locker))

	called := false
	err := m.WithLock(context.Background(), "conv", func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called, "fn must not run without the distributed lock")
}

func TestLoadAndDelete(t *testing.T) {
	store := memory.NewStore()
	m := NewManager(store)
	ctx := context.Background()

	stack := dialog.NewStack()
	stack.Frames = []*dialog.Frame{{Dialog: "menu"}}
	require.NoError(t, store.Save(ctx, "conv", stack))

	loaded, err := m.Load(ctx, "conv")
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Depth())

	require.NoError(t, m.Delete(ctx, "conv"))
	_, err = m.Load(ctx, "conv")
	assert.ErrorIs(t, err, dialog.ErrStackNotFound)

	ids, err := m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
