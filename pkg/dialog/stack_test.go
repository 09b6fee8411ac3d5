package dialog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopStep(ctx context.Context, tc *TurnContext, state map[string]any, result any) (StepOutcome, error) {
	return End(nil), nil
}

func registryWith(t *testing.T, names ...string) *Registry {
	t.Helper()
	reg := NewRegistry()
	for _, name := range names {
		require.NoError(t, reg.Register(&Definition{Name: name, Steps: []StepFunc{noopStep}}))
	}
	return reg
}

func TestRegistryRejectsDuplicatesAndEmpties(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Definition{Name: "a", Steps: []StepFunc{noopStep}}))

	assert.Error(t, reg.Register(&Definition{Name: "a", Steps: []StepFunc{noopStep}}))
	assert.Error(t, reg.Register(&Definition{Name: "", Steps: []StepFunc{noopStep}}))
	assert.Error(t, reg.Register(&Definition{Name: "b"}))
	assert.Error(t, reg.Register(nil))
}

func TestRegistryCheckReferences(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Definition{Name: "a", Uses: []string{"b"}, Steps: []StepFunc{noopStep}}))
	assert.ErrorIs(t, reg.CheckReferences(), ErrUnknownDialog)

	require.NoError(t, reg.Register(&Definition{Name: "b", Steps: []StepFunc{noopStep}}))
	assert.NoError(t, reg.CheckReferences())
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := registryWith(t, "menu", "extrato", "pedidos")
	assert.Equal(t, []string{"extrato", "menu", "pedidos"}, reg.Names())
}

func TestStackPushPopPeek(t *testing.T) {
	reg := registryWith(t, "a", "b")
	s := NewStack()
	assert.Nil(t, s.Peek())
	assert.Equal(t, 0, s.Depth())

	_, err := s.Push(reg, "a", nil)
	require.NoError(t, err)
	_, err = s.Push(reg, "b", map[string]any{"k": "v"})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, "b", s.Peek().Dialog)
	assert.Equal(t, "v", s.Peek().State["k"])

	top, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, "b", top.Dialog)
	assert.Equal(t, "a", s.Peek().Dialog)

	_, err = s.Pop()
	require.NoError(t, err)
	_, err = s.Pop()
	assert.ErrorIs(t, err, ErrEmptyStack)
}

func TestStackPushUnknownDialog(t *testing.T) {
	reg := registryWith(t, "a")
	s := NewStack()
	_, err := s.Push(reg, "ghost", nil)
	assert.ErrorIs(t, err, ErrUnknownDialog)
}

func TestStackValidateAgainstRegistry(t *testing.T) {
	reg := registryWith(t, "a")
	s := &Stack{Frames: []*Frame{{Dialog: "a"}, {Dialog: "removed"}}}
	assert.ErrorIs(t, s.Validate(reg), ErrRegistryMismatch)

	s = &Stack{Frames: []*Frame{{Dialog: "a"}}}
	assert.NoError(t, s.Validate(reg))
}

func TestStackRoundTripsThroughJSON(t *testing.T) {
	min := 1.0
	s := &Stack{
		Version: 7,
		Frames: []*Frame{
			{Dialog: "menu", Step: 1, State: map[string]any{"cliente": "Maria"}},
			{Dialog: "extrato", Prompt: &PromptState{
				Kind:       PromptNumber,
				Text:       "Qual ano?",
				Min:        &min,
				RetryCount: 1,
				MaxRetries: 2,
			}},
		},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var got Stack
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, int64(7), got.Version)
	require.Len(t, got.Frames, 2)
	assert.Equal(t, "Maria", got.Frames[0].State["cliente"])
	require.NotNil(t, got.Frames[1].Prompt)
	assert.Equal(t, PromptNumber, got.Frames[1].Prompt.Kind)
	assert.Equal(t, 1, got.Frames[1].Prompt.RetryCount)
	require.NotNil(t, got.Frames[1].Prompt.Min)
	assert.Equal(t, 1.0, *got.Frames[1].Prompt.Min)
}
