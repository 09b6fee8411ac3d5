// Package config loads the server configuration from a YAML file with
// sensible defaults for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig selects and configures the conversation stack store.
type StoreConfig struct {
	// Kind is "memory" or "redis".
	Kind  string        `yaml:"kind"`
	TTL   time.Duration `yaml:"ttl"`
	Redis RedisConfig   `yaml:"redis"`
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// Lock enables distributed per-conversation locking across replicas.
	Lock bool `yaml:"lock"`
}

// LogConfig configures structured logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":3978",
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{
			Kind: "memory",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML configuration file, layering it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	switch c.Store.Kind {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown store kind %q (want memory or redis)", c.Store.Kind)
	}
	if c.Store.Kind == "redis" && c.Store.Redis.Addr == "" {
		return fmt.Errorf("store.redis.addr is required when store.kind is redis")
	}
	return nil
}
