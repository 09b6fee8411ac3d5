package ports

import (
	"context"
	"testing"
	"time"

	"github.com/atendebot/atende/pkg/dialog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStackStoreContract verifies that a StackStore implementation adheres to
// the interface contract, including the optimistic concurrency semantics.
func RunStackStoreContract(t *testing.T, store StackStore) {
	ctx := context.Background()
	convID := "contract-conversation-" + time.Now().Format("20060102150405")

	reg := dialog.NewRegistry()
	require.NoError(t, reg.Register(&dialog.Definition{
		Name: "noop",
		Steps: []dialog.StepFunc{
			func(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
				return dialog.End(nil), nil
			},
		},
	}))

	buildStack := func(depth int) *dialog.Stack {
		stack := dialog.NewStack()
		for i := 0; i < depth; i++ {
			frame, err := stack.Push(reg, "noop", map[string]any{"level": i})
			require.NoError(t, err)
			frame.Step = i
		}
		return stack
	}

	t.Run("Save and Load round trip", func(t *testing.T) {
		stack := buildStack(3)
		top := stack.Peek()
		top.State["cliente"] = "Maria"
		top.Prompt = &dialog.PromptState{
			Kind:       dialog.PromptChoice,
			Text:       "Escolha a opção desejada:",
			Choices:    []dialog.Choice{dialog.NewChoice("Consultar Pedidos")},
			MaxRetries: 2,
			RetryCount: 1,
		}

		require.NoError(t, store.Save(ctx, convID, stack))

		loaded, err := store.Load(ctx, convID)
		require.NoError(t, err)
		require.Equal(t, 3, loaded.Depth())
		for i, frame := range loaded.Frames {
			assert.Equal(t, "noop", frame.Dialog)
			assert.Equal(t, i, frame.Step)
		}
		assert.Equal(t, "Maria", loaded.Peek().State["cliente"])
		require.NotNil(t, loaded.Peek().Prompt)
		assert.Equal(t, dialog.PromptChoice, loaded.Peek().Prompt.Kind)
		assert.Equal(t, 1, loaded.Peek().Prompt.RetryCount)
		assert.Equal(t, "Consultar Pedidos", loaded.Peek().Prompt.Choices[0].Label)
		assert.Equal(t, stack.Version, loaded.Version)
	})

	t.Run("Save bumps version", func(t *testing.T) {
		loaded, err := store.Load(ctx, convID)
		require.NoError(t, err)
		before := loaded.Version

		require.NoError(t, store.Save(ctx, convID, loaded))
		assert.Equal(t, before+1, loaded.Version)
	})

	t.Run("Stale save is rejected", func(t *testing.T) {
		first, err := store.Load(ctx, convID)
		require.NoError(t, err)
		second, err := store.Load(ctx, convID)
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, convID, first))
		// Duplicate delivery: same token, must lose the race.
		err = store.Save(ctx, convID, second)
		assert.ErrorIs(t, err, dialog.ErrVersionConflict)
	})

	t.Run("Load non-existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+convID)
		assert.ErrorIs(t, err, dialog.ErrStackNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, convID+"-del", buildStack(1)))
		require.NoError(t, store.Delete(ctx, convID+"-del"))

		_, err := store.Load(ctx, convID+"-del")
		assert.ErrorIs(t, err, dialog.ErrStackNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := convID + "-1"
		id2 := convID + "-2"
		require.NoError(t, store.Save(ctx, id1, buildStack(1)))
		require.NoError(t, store.Save(ctx, id2, buildStack(2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
