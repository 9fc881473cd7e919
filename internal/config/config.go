package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack21/internal/game"
)

// Config represents the complete blackjack configuration
type Config struct {
	Table      TableSettings     `hcl:"table,block"`
	Players    []PlayerConfig    `hcl:"player,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// TableSettings contains table-level configuration
type TableSettings struct {
	Decks    int    `hcl:"decks,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// PlayerConfig seats a named player at the table
type PlayerConfig struct {
	Name string `hcl:"name,label"`
}

// SimulationConfig configures automated play
type SimulationConfig struct {
	Rounds  int    `hcl:"rounds,optional"`
	Tables  int    `hcl:"tables,optional"`
	Players int    `hcl:"players,optional"`
	Seed    int64  `hcl:"seed,optional"`
	Policy  string `hcl:"policy,optional"`
	Delay   string `hcl:"delay,optional"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Table: TableSettings{
			Decks:    6,
			LogLevel: "info",
		},
		Simulation: &SimulationConfig{
			Rounds:  1000,
			Tables:  1,
			Players: 3,
			Policy:  "basic",
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Table.Decks == 0 {
		config.Table.Decks = 6
	}
	if config.Table.LogLevel == "" {
		config.Table.LogLevel = "info"
	}

	if config.Simulation == nil {
		config.Simulation = DefaultConfig().Simulation
	} else {
		if config.Simulation.Rounds == 0 {
			config.Simulation.Rounds = 1000
		}
		if config.Simulation.Tables == 0 {
			config.Simulation.Tables = 1
		}
		if config.Simulation.Players == 0 {
			config.Simulation.Players = 3
		}
		if config.Simulation.Policy == "" {
			config.Simulation.Policy = "basic"
		}
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.Decks < 1 || c.Table.Decks > 6 {
		return fmt.Errorf("decks must be between 1 and 6, got %d", c.Table.Decks)
	}

	if len(c.Players) > game.MaxTablePlayers {
		return fmt.Errorf("at most %d players can be seated, got %d", game.MaxTablePlayers, len(c.Players))
	}

	seen := make(map[string]bool)
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
	}

	if s := c.Simulation; s != nil {
		if s.Rounds < 1 {
			return fmt.Errorf("simulation rounds must be positive, got %d", s.Rounds)
		}
		if s.Tables < 1 {
			return fmt.Errorf("simulation tables must be positive, got %d", s.Tables)
		}
		if s.Players < 1 || s.Players > game.MaxTablePlayers {
			return fmt.Errorf("simulation players must be between 1 and %d, got %d", game.MaxTablePlayers, s.Players)
		}
		if _, err := s.PauseDuration(); err != nil {
			return err
		}
	}

	return nil
}

// PauseDuration parses the configured inter-round delay
func (s *SimulationConfig) PauseDuration() (time.Duration, error) {
	if s.Delay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Delay)
	if err != nil {
		return 0, fmt.Errorf("invalid simulation delay %q: %w", s.Delay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("simulation delay must not be negative, got %s", s.Delay)
	}
	return d, nil
}

// PlayerNames returns the configured player names in seat order
func (c *Config) PlayerNames() []string {
	names := make([]string, len(c.Players))
	for i, p := range c.Players {
		names[i] = p.Name
	}
	return names
}
