package atende_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atendebot/atende"
	"github.com/atendebot/atende/pkg/adapters/memory"
	"github.com/atendebot/atende/pkg/dialog"
)

func echoRegistry(t *testing.T) *dialog.Registry {
	t.Helper()
	reg := dialog.NewRegistry()
	require.NoError(t, reg.Register(&dialog.Definition{
		Name: "eco",
		Steps: []dialog.StepFunc{
			func(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
				tc.SendText(tc.Input.Text)
				return dialog.End(nil), nil
			},
		},
	}))
	return reg
}

func TestNewRejectsUnknownRoot(t *testing.T) {
	_, err := atende.New(echoRegistry(t), memory.NewStore(), "inexistente")
	assert.ErrorIs(t, err, dialog.ErrUnknownDialog)
}

func TestProcessTurnThroughFacade(t *testing.T) {
	bot, err := atende.New(echoRegistry(t), memory.NewStore(), "eco")
	require.NoError(t, err)

	activities, err := bot.ProcessTurn(context.Background(), "conv", dialog.Input{Text: "ping"})
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "ping", activities[0].Text)
}

func TestConcurrentTurnsOnSameConversation(t *testing.T) {
	bot, err := atende.New(echoRegistry(t), memory.NewStore(), "eco")
	require.NoError(t, err)

	// The session lock serializes deliveries, so none may lose the optimistic
	// version check.
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = bot.ProcessTurn(context.Background(), "conv", dialog.Input{Text: "oi"})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestSessionsAccessor(t *testing.T) {
	store := memory.NewStore()
	bot, err := atende.New(echoRegistry(t), store, "eco")
	require.NoError(t, err)

	ctx := context.Background()
	_, err = bot.ProcessTurn(ctx, "conv", dialog.Input{Text: "oi"})
	require.NoError(t, err)

	ids, err := bot.Sessions().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"conv"}, ids)

	require.NoError(t, bot.Sessions().Delete(ctx, "conv"))
	ids, err = bot.Sessions().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
