package atende

import (
	"context"
	"log/slog"

	"github.com/atendebot/atende/internal/logging"
	"github.com/atendebot/atende/internal/runtime"
	"github.com/atendebot/atende/pkg/dialog"
	"github.com/atendebot/atende/pkg/ports"
	"github.com/atendebot/atende/pkg/session"
)

// Version is the release version of the atende engine.
const Version = "0.3.0"

// Bot processes conversation turns. Turns for the same conversation are
// serialized; distinct conversations proceed in parallel.
type Bot struct {
	manager  *runtime.Manager
	sessions *session.Manager
	logger   *slog.Logger
}

// Option configures the Bot.
type Option func(*botOptions)

type botOptions struct {
	logger     *slog.Logger
	locker     ports.DistributedLocker
	hooks      dialog.Hooks
	messages   *dialog.Messages
	maxCascade int
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *botOptions) { o.logger = logger }
}

// WithLocker enables distributed locking, serializing turns across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(o *botOptions) { o.locker = locker }
}

// WithHooks registers lifecycle hooks for logging and metrics.
func WithHooks(hooks dialog.Hooks) Option {
	return func(o *botOptions) { o.hooks = hooks }
}

// WithMessages overrides the engine's user-facing texts.
func WithMessages(msgs dialog.Messages) Option {
	return func(o *botOptions) { o.messages = &msgs }
}

// WithMaxCascadeDepth overrides the same-turn cascade bound.
func WithMaxCascadeDepth(depth int) Option {
	return func(o *botOptions) { o.maxCascade = depth }
}

// New builds a Bot over a populated registry and a stack store. The root
// dialog and all declared child references are validated here: configuration
// errors surface at startup, never at first use.
func New(registry *dialog.Registry, store ports.StackStore, rootDialog string, opts ...Option) (*Bot, error) {
	options := &botOptions{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(options)
	}

	managerOpts := []runtime.Option{
		runtime.WithLogger(options.logger),
		runtime.WithHooks(options.hooks),
	}
	if options.messages != nil {
		managerOpts = append(managerOpts, runtime.WithMessages(*options.messages))
	}
	if options.maxCascade > 0 {
		managerOpts = append(managerOpts, runtime.WithMaxCascadeDepth(options.maxCascade))
	}

	manager, err := runtime.NewManager(registry, store, rootDialog, managerOpts...)
	if err != nil {
		return nil, err
	}

	sessionOpts := []session.Option{session.WithLogger(options.logger)}
	if options.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(options.locker))
	}

	return &Bot{
		manager:  manager,
		sessions: session.NewManager(store, sessionOpts...),
		logger:   options.logger,
	}, nil
}

// ProcessTurn runs one request/response exchange under the conversation's
// lock and returns the ordered activities to render to the user.
func (b *Bot) ProcessTurn(ctx context.Context, conversationID string, input dialog.Input) ([]dialog.Activity, error) {
	var activities []dialog.Activity
	err := b.sessions.WithLock(ctx, conversationID, func(ctx context.Context) error {
		var err error
		activities, err = b.manager.ProcessTurn(ctx, conversationID, input)
		return err
	})
	return activities, err
}

// Sessions exposes conversation management (list, reset).
func (b *Bot) Sessions() *session.Manager {
	return b.sessions
}
