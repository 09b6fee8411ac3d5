package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atendebot/atende/internal/logging"
	"github.com/atendebot/atende/pkg/dialog"
	"github.com/atendebot/atende/pkg/ports"
)

// DefaultMaxCascadeDepth bounds the synchronous chain of step executions and
// dialog completions resolved within a single turn.
const DefaultMaxCascadeDepth = 64

// Manager is the per-turn entry point: it loads the conversation's stack,
// routes the input to the pending prompt or the next waterfall step, drains
// the turn, and persists the result atomically.
type Manager struct {
	registry   *dialog.Registry
	store      ports.StackStore
	root       string
	logger     *slog.Logger
	hooks      dialog.Hooks
	messages   dialog.Messages
	maxCascade int
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger sets a structured logger for engine events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithHooks registers lifecycle hooks.
func WithHooks(hooks dialog.Hooks) Option {
	return func(m *Manager) { m.hooks = hooks }
}

// WithMessages overrides the engine's user-facing texts.
func WithMessages(msgs dialog.Messages) Option {
	return func(m *Manager) { m.messages = msgs }
}

// WithMaxCascadeDepth overrides the same-turn cascade bound.
func WithMaxCascadeDepth(depth int) Option {
	return func(m *Manager) { m.maxCascade = depth }
}

// NewManager builds a Manager for a registry and store. The root dialog and
// every declared child reference are validated here, failing fast on
// configuration errors instead of at first use.
func NewManager(registry *dialog.Registry, store ports.StackStore, root string, opts ...Option) (*Manager, error) {
	if _, ok := registry.Lookup(root); !ok {
		return nil, fmt.Errorf("root dialog %q: %w", root, dialog.ErrUnknownDialog)
	}
	if err := registry.CheckReferences(); err != nil {
		return nil, err
	}

	m := &Manager{
		registry:   registry,
		store:      store,
		root:       root,
		logger:     logging.NewNop(),
		messages:   dialog.DefaultMessages(),
		maxCascade: DefaultMaxCascadeDepth,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// ProcessTurn handles one request/response exchange for a conversation. On
// persistence failure the turn has no observable effect: no activities are
// returned and no state is mutated in the store.
func (m *Manager) ProcessTurn(ctx context.Context, conversationID string, input dialog.Input) ([]dialog.Activity, error) {
	stack, err := m.store.Load(ctx, conversationID)
	if errors.Is(err, dialog.ErrStackNotFound) {
		stack = dialog.NewStack()
	} else if err != nil {
		return nil, fmt.Errorf("load stack for %q: %w", conversationID, err)
	}
	if err := stack.Validate(m.registry); err != nil {
		return nil, err
	}

	tc := dialog.NewTurnContext(conversationID, input)

	var incoming any
	suspended := false

	switch top := stack.Peek(); {
	case top == nil:
		if _, err := stack.Push(m.registry, m.root, nil); err != nil {
			return nil, err
		}
		m.dialogBegun(ctx, conversationID, m.root)
		// The raw input may seed the very first step of a fresh dialog.
		if input.Text != "" {
			incoming = input.Text
		}
	case top.Prompt != nil:
		incoming, suspended = m.resumePrompt(ctx, tc, stack, input)
	default:
		if input.Text != "" {
			incoming = input.Text
		}
	}

	if !suspended {
		if err := m.drain(ctx, tc, stack, incoming); err != nil {
			return nil, err
		}
	}

	if err := m.store.Save(ctx, conversationID, stack); err != nil {
		return nil, fmt.Errorf("save stack for %q: %w", conversationID, err)
	}

	m.logger.Debug("turn drained",
		"conversation_id", conversationID,
		"depth", stack.Depth(),
		"activities", len(tc.Activities()),
	)
	return tc.Activities(), nil
}

// resumePrompt validates the reply against the top frame's pending prompt.
// It returns the incoming result for the drain loop and whether the turn is
// already suspended on a re-prompt.
func (m *Manager) resumePrompt(ctx context.Context, tc *dialog.TurnContext, stack *dialog.Stack, input dialog.Input) (any, bool) {
	frame := stack.Peek()
	prompt := frame.Prompt

	value, ok := prompt.Validate(input)
	if ok {
		frame.Prompt = nil
		frame.Step++
		return value, false
	}

	prompt.RetryCount++
	if prompt.RetryCount <= prompt.MaxRetries {
		if m.hooks.OnPromptRetry != nil {
			m.hooks.OnPromptRetry(ctx, tc.ConversationID, frame.Dialog, prompt.Kind)
		}
		tc.SendActivity(prompt.RetryActivity())
		return nil, true
	}

	// Retry exhaustion is not an error: the prompt resolves as a cancelled
	// dialog and the completion cascades like any other.
	frame.Prompt = nil
	incoming, done := m.endTop(ctx, tc, stack, dialog.Result{Status: dialog.StatusCancelled})
	if done {
		return nil, true
	}
	return incoming, false
}

// drain runs steps until something suspends or the stack empties: the turn
// either ends with a pending prompt on the top frame or with a fully drained
// stack. The cascade bound guards against dialogs that begin and end each
// other indefinitely.
func (m *Manager) drain(ctx context.Context, tc *dialog.TurnContext, stack *dialog.Stack, incoming any) error {
	for depth := 0; stack.Depth() > 0; depth++ {
		if depth >= m.maxCascade {
			return fmt.Errorf("conversation %q: %w", tc.ConversationID, dialog.ErrCascadeOverflow)
		}

		frame := stack.Peek()
		def, ok := m.registry.Lookup(frame.Dialog)
		if !ok {
			return fmt.Errorf("frame %q: %w", frame.Dialog, dialog.ErrUnknownDialog)
		}
		if frame.State == nil {
			frame.State = make(map[string]any)
		}

		var outcome dialog.StepOutcome
		if frame.Step >= len(def.Steps) {
			// Exhausted waterfall: implicit end.
			outcome = dialog.End(nil)
		} else {
			out, err := def.Steps[frame.Step](ctx, tc, frame.State, incoming)
			if err != nil {
				// Step-local failure (e.g. the order store is unreachable) is
				// converted at this boundary so parents can still resume.
				m.logger.Warn("step handler failed",
					"conversation_id", tc.ConversationID,
					"dialog", frame.Dialog,
					"step", frame.Step,
					"err", err,
				)
				out = dialog.Fail(err.Error())
			}
			outcome = out
		}
		incoming = nil

		switch kind, payload := outcome.Unpack(); kind {
		case dialog.OutcomeContinue:
			for k, v := range payload.State {
				frame.State[k] = v
			}
			frame.Step++
			incoming = payload.Value

		case dialog.OutcomeBegin:
			// The parent's step index stays put; it advances when the child
			// ends, making the next step the continuation point.
			if _, err := stack.Push(m.registry, payload.Dialog, payload.Options); err != nil {
				return err
			}
			m.dialogBegun(ctx, tc.ConversationID, payload.Dialog)

		case dialog.OutcomePrompt:
			dialog.BeginPrompt(tc, frame, payload.Prompt)
			return nil

		case dialog.OutcomeEnd:
			next, done := m.endTop(ctx, tc, stack, payload.Result)
			if done {
				return nil
			}
			incoming = next
		}
	}
	return nil
}

// endTop pops the active frame and delivers its result to the waiting parent.
// It reports done=true when the stack is drained.
func (m *Manager) endTop(ctx context.Context, tc *dialog.TurnContext, stack *dialog.Stack, result dialog.Result) (any, bool) {
	ended, err := stack.Pop()
	if err != nil {
		return nil, true
	}

	if m.hooks.OnDialogEnd != nil {
		m.hooks.OnDialogEnd(ctx, tc.ConversationID, ended.Dialog, result.Status)
	}
	switch result.Status {
	case dialog.StatusCancelled:
		tc.SendText(m.messages.Cancelled)
	case dialog.StatusFailed:
		tc.SendText(m.messages.Failed)
	}

	if stack.Depth() == 0 {
		return nil, true
	}
	parent := stack.Peek()
	parent.Step++
	return result, false
}

func (m *Manager) dialogBegun(ctx context.Context, conversationID, name string) {
	if m.hooks.OnDialogBegin != nil {
		m.hooks.OnDialogBegin(ctx, conversationID, name)
	}
	m.logger.Debug("dialog begun", "conversation_id", conversationID, "dialog", name)
}
