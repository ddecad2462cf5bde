package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	var cfg Config
	require.NoError(t, Parse(&cfg))

	assert.Equal(t, "results.yaml", cfg.ResultsFile)
	assert.Equal(t, 250*time.Millisecond, cfg.TickRate)
	assert.Equal(t, 100*time.Millisecond, cfg.Debounce)
	assert.Empty(t, cfg.Poll)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestParse_Environment(t *testing.T) {
	t.Setenv("TALLY_RESULTS_FILE", "/srv/results.json")
	t.Setenv("TALLY_POLL", "@every 30s")
	t.Setenv("TALLY_TICK_RATE", "1s")
	t.Setenv("TALLY_LOG_LEVEL", "debug")

	var cfg Config
	require.NoError(t, Parse(&cfg))

	assert.Equal(t, "/srv/results.json", cfg.ResultsFile)
	assert.Equal(t, "@every 30s", cfg.Poll)
	assert.Equal(t, time.Second, cfg.TickRate)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestParse_InvalidDuration(t *testing.T) {
	t.Setenv("TALLY_TICK_RATE", "soon")

	var cfg Config
	assert.Error(t, Parse(&cfg))
}

func TestLevel_Fallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "loud"}.Level())
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: " WARN "}.Level())
}

type cachedConfig struct {
	Name string `env:"TALLY_TEST_CACHED_NAME" envDefault:"first"`
}

func TestLoad_CachesPerType(t *testing.T) {
	var first cachedConfig
	require.NoError(t, Load(&first))
	assert.Equal(t, "first", first.Name)

	t.Setenv("TALLY_TEST_CACHED_NAME", "second")
	var second cachedConfig
	require.NoError(t, Load(&second))
	assert.Equal(t, "first", second.Name)

	assert.NotPanics(t, func() { MustLoad(&second) })
}
