// Package cli holds the command logic shared by the atende binary.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	backend "github.com/redis/go-redis/v9"

	"github.com/atendebot/atende"
	"github.com/atendebot/atende/internal/bot"
	"github.com/atendebot/atende/internal/config"
	"github.com/atendebot/atende/internal/logging"
	"github.com/atendebot/atende/internal/metrics"
	"github.com/atendebot/atende/internal/orders"
	memorystore "github.com/atendebot/atende/pkg/adapters/memory"
	redisadapter "github.com/atendebot/atende/pkg/adapters/redis"
	"github.com/atendebot/atende/pkg/ports"
)

// App bundles everything a command needs to run the assistant.
type App struct {
	Bot     *atende.Bot
	Orders  orders.Store
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	closers []func() error
}

// Close releases any backing connections.
func (a *App) Close() error {
	var first error
	for _, fn := range a.closers {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewLogger builds the application logger from the config, honoring --debug.
func NewLogger(cfg config.LogConfig, debug bool) *slog.Logger {
	level := logging.ParseLevel(cfg.Level)
	if debug {
		level = slog.LevelDebug
	}
	if cfg.Format == "json" {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}

// BuildApp wires the stack store, the order store, the dialog registry and the
// engine according to the configuration.
func BuildApp(ctx context.Context, cfg config.Config, logger *slog.Logger, m *metrics.Metrics) (*App, error) {
	app := &App{Logger: logger, Metrics: m}

	var stacks ports.StackStore
	var locker ports.DistributedLocker

	switch cfg.Store.Kind {
	case "redis":
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Store.Redis.Addr, err)
		}
		app.closers = append(app.closers, client.Close)

		stacks = redisadapter.NewFromClient(client, redisadapter.WithTTL(cfg.Store.TTL))
		if cfg.Store.Redis.Lock {
			locker = redisadapter.NewLocker(client, "atende:lock:")
		}

		rstore := orders.NewRedisStore(client, "atende:")
		if err := orders.SeedRedis(ctx, rstore); err != nil {
			return nil, fmt.Errorf("seed order data: %w", err)
		}
		app.Orders = rstore

	default:
		stacks = memorystore.NewStore()
		mstore := orders.NewMemoryStore()
		orders.SeedMemory(mstore)
		app.Orders = mstore
	}

	registry, err := bot.NewRegistry(app.Orders)
	if err != nil {
		return nil, err
	}

	opts := []atende.Option{atende.WithLogger(logger)}
	if locker != nil {
		opts = append(opts, atende.WithLocker(locker))
	}
	if m != nil {
		opts = append(opts, atende.WithHooks(m.Hooks()))
	}

	engine, err := atende.New(registry, stacks, bot.DialogMenu, opts...)
	if err != nil {
		return nil, err
	}
	app.Bot = engine
	return app, nil
}
