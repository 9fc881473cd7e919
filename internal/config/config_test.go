package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig("does-not-exist.hcl")
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), config)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
table {
  decks     = 2
  log_level = "debug"
}

player "Lemmy" {}
player "Andrew" {}

simulation {
  rounds = 500
  tables = 4
  seed   = 42
  policy = "mimic"
  delay  = "250ms"
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, 2, config.Table.Decks)
	assert.Equal(t, "debug", config.Table.LogLevel)
	assert.Equal(t, []string{"Lemmy", "Andrew"}, config.PlayerNames())

	assert.Equal(t, 500, config.Simulation.Rounds)
	assert.Equal(t, 4, config.Simulation.Tables)
	assert.Equal(t, 3, config.Simulation.Players, "unset field falls back to its default")
	assert.Equal(t, int64(42), config.Simulation.Seed)
	assert.Equal(t, "mimic", config.Simulation.Policy)

	delay, err := config.Simulation.PauseDuration()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, delay)
}

func TestLoadConfigPartialFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, `
table {}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 6, config.Table.Decks)
	assert.Equal(t, "info", config.Table.LogLevel)
	assert.Empty(t, config.Players)
	require.NotNil(t, config.Simulation)
	assert.Equal(t, "basic", config.Simulation.Policy)
}

func TestLoadConfigParseError(t *testing.T) {
	path := writeConfig(t, `table { decks = `)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "too many decks",
			mutate:  func(c *Config) { c.Table.Decks = 7 },
			wantErr: "decks must be between 1 and 6",
		},
		{
			name:    "zero decks",
			mutate:  func(c *Config) { c.Table.Decks = 0 },
			wantErr: "decks must be between 1 and 6",
		},
		{
			name: "empty player name",
			mutate: func(c *Config) {
				c.Players = []PlayerConfig{{Name: ""}}
			},
			wantErr: "player name must not be empty",
		},
		{
			name: "duplicate player name",
			mutate: func(c *Config) {
				c.Players = []PlayerConfig{{Name: "Lemmy"}, {Name: "Lemmy"}}
			},
			wantErr: `duplicate player name "Lemmy"`,
		},
		{
			name: "too many players",
			mutate: func(c *Config) {
				for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
					c.Players = append(c.Players, PlayerConfig{Name: n})
				}
			},
			wantErr: "at most 7 players",
		},
		{
			name:    "simulation players out of range",
			mutate:  func(c *Config) { c.Simulation.Players = 8 },
			wantErr: "simulation players must be between 1 and 7",
		},
		{
			name:    "negative delay",
			mutate:  func(c *Config) { c.Simulation.Delay = "-1s" },
			wantErr: "delay must not be negative",
		},
		{
			name:    "malformed delay",
			mutate:  func(c *Config) { c.Simulation.Delay = "fast" },
			wantErr: "invalid simulation delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
