package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/concentration/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "concentration.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadServerConfig(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "nope.hcl"))
		require.NoError(t, err)
		assert.Equal(t, DefaultServerConfig(), cfg)
		assert.Equal(t, "localhost:8080", cfg.GetServerAddress())
		require.NoError(t, cfg.Validate())
	})

	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, `
server {
  address            = "0.0.0.0"
  port               = 9000
  log_level          = "debug"
  seed               = 42
  default_difficulty = "tiny"
}

timing {
  match_settle_ms    = 100
  mismatch_cue_ms    = 200
  mismatch_settle_ms = 300
}

difficulty "tiny" {
  pairs   = 2
  columns = 2
}

difficulty "hard" {
  pairs = 10
}

alphabet = ["A", "B", "C", "D", "E", "F", "G", "H", "I", "J"]
`)
		cfg, err := LoadServerConfig(path)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		assert.Equal(t, "0.0.0.0:9000", cfg.GetServerAddress())
		assert.Equal(t, "debug", cfg.Server.LogLevel)
		assert.Equal(t, int64(42), cfg.Server.Seed)

		hard, ok := cfg.LookupDifficulty("hard")
		require.True(t, ok)
		assert.Equal(t, game.Difficulty{Name: "hard", Pairs: 10, Columns: 4}, hard)

		tiny, ok := cfg.LookupDifficulty("tiny")
		require.True(t, ok)
		gc := cfg.GameConfig(tiny)
		assert.Equal(t, "tiny", gc.Name)
		assert.Equal(t, 2, gc.Pairs)
		assert.Len(t, gc.Alphabet, 10)
		assert.Equal(t, game.Timing{
			MatchSettle:    100 * time.Millisecond,
			MismatchCue:    200 * time.Millisecond,
			MismatchSettle: 300 * time.Millisecond,
		}, gc.Timing)
	})

	t.Run("partial server block keeps defaults", func(t *testing.T) {
		path := writeConfig(t, `
server {
  port = 8181
}
`)
		cfg, err := LoadServerConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "localhost:8181", cfg.GetServerAddress())
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.Equal(t, game.DefaultDifficulty, cfg.Server.DefaultDifficulty)
		assert.Nil(t, cfg.Timing)
		require.NoError(t, cfg.Validate())
	})

	t.Run("server block is optional", func(t *testing.T) {
		path := writeConfig(t, `
difficulty "tiny" {
  pairs   = 2
  columns = 2
}

alphabet = ["A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"]
`)
		cfg, err := LoadServerConfig(path)
		require.NoError(t, err)
		require.NotNil(t, cfg.Server)
		assert.Equal(t, "localhost:8080", cfg.GetServerAddress())
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.Equal(t, game.DefaultDifficulty, cfg.Server.DefaultDifficulty)
		_, ok := cfg.LookupDifficulty("tiny")
		assert.True(t, ok)
		require.NoError(t, cfg.Validate())
	})

	t.Run("syntax error", func(t *testing.T) {
		path := writeConfig(t, `server {`)
		_, err := LoadServerConfig(path)
		assert.ErrorContains(t, err, "failed to parse HCL file")
	})

	t.Run("unknown attribute", func(t *testing.T) {
		path := writeConfig(t, `
server {
  colour = "blue"
}
`)
		_, err := LoadServerConfig(path)
		assert.ErrorContains(t, err, "failed to decode HCL")
	})
}

func TestServerConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ServerConfig)
		errMsg string
	}{
		{"bad port", func(c *ServerConfig) { c.Server.Port = 70000 }, "invalid port"},
		{"bad log level", func(c *ServerConfig) { c.Server.LogLevel = "loud" }, "invalid log level"},
		{"negative timing", func(c *ServerConfig) { c.Timing = &TimingConfig{MismatchCueMS: -1} }, "must not be negative"},
		{"duplicate difficulty", func(c *ServerConfig) {
			c.Difficulties = []DifficultyConfig{{Name: "x", Pairs: 2, Columns: 2}, {Name: "x", Pairs: 3, Columns: 2}}
		}, "defined more than once"},
		{"zero columns", func(c *ServerConfig) {
			c.Difficulties = []DifficultyConfig{{Name: "x", Pairs: 2}}
		}, "columns must be positive"},
		{"too few pairs", func(c *ServerConfig) {
			c.Difficulties = []DifficultyConfig{{Name: "x", Pairs: 1, Columns: 2}}
		}, "difficulty x"},
		{"alphabet too small for presets", func(c *ServerConfig) { c.Alphabet = []string{"A", "B", "C"} }, "difficulty easy"},
		{"unknown default", func(c *ServerConfig) { c.Server.DefaultDifficulty = "nightmare" }, "default difficulty nightmare"},
		{"no server settings", func(c *ServerConfig) { c.Server = nil }, "missing server settings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestDifficultyList(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Difficulties = []DifficultyConfig{
		{Name: "medium", Pairs: 9, Columns: 6},
		{Name: "giant", Pairs: 15, Columns: 6},
	}

	list := cfg.DifficultyList()
	require.Len(t, list, 4)
	assert.Equal(t, game.Difficulty{Name: "easy", Pairs: 6, Columns: 4}, list[0])
	assert.Equal(t, game.Difficulty{Name: "medium", Pairs: 9, Columns: 6}, list[1])
	assert.Equal(t, "giant", list[3].Name)

	// presets themselves are untouched
	medium, ok := game.LookupDifficulty("medium")
	require.True(t, ok)
	assert.Equal(t, 8, medium.Pairs)
}
