// Package config loads environment configuration into typed structs.
//
// A .env file in the working directory is loaded once, on first use, without
// overriding variables already set. Each struct type is parsed once and
// cached; Parse skips the cache.
package config

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the tally configuration. Flags given on the command line take
// precedence over these values.
type Config struct {
	ResultsFile string        `env:"TALLY_RESULTS_FILE" envDefault:"results.yaml"`
	Poll        string        `env:"TALLY_POLL"`
	TickRate    time.Duration `env:"TALLY_TICK_RATE" envDefault:"250ms"`
	Debounce    time.Duration `env:"TALLY_DEBOUNCE" envDefault:"100ms"`
	LogLevel    string        `env:"TALLY_LOG_LEVEL" envDefault:"info"`
	LogFile     string        `env:"TALLY_LOG_FILE"`
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

var (
	dotenvOnce sync.Once
	cache      sync.Map
)

// Load parses the environment into cfg, reusing the first result for each
// struct type.
func Load[T any](cfg *T) error {
	typ := reflect.TypeFor[T]()
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}
	if err := Parse(cfg); err != nil {
		return err
	}
	cache.Store(typ, *cfg)
	return nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Parse parses the environment into cfg without caching.
func Parse[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %T: %w", *cfg, err)
	}
	return nil
}
