package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack21/internal/config"
	"github.com/lox/blackjack21/internal/console"
)

// PlayCmd runs an interactive session at the terminal
type PlayCmd struct {
	Config  string   `type:"path" default:"blackjack.hcl" help:"HCL configuration file"`
	Decks   int      `help:"Decks in the shoe, 1 to 6 (overrides config)"`
	Players []string `help:"Seat players by name, skipping registration (overrides config)"`
	Seed    int64    `help:"Deterministic shoe seed (0 seeds from the clock)"`
	NoColor bool     `help:"Disable coloured output"`
	Debug   bool     `help:"Enable debug logging"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Decks != 0 {
		cfg.Table.Decks = c.Decks
	}
	if len(c.Players) > 0 {
		cfg.Players = nil
		for _, name := range c.Players {
			cfg.Players = append(cfg.Players, config.PlayerConfig{Name: name})
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(c.Debug, cfg.Table.LogLevel)

	return console.Run(console.Config{
		Decks:   cfg.Table.Decks,
		Seed:    c.Seed,
		Players: cfg.PlayerNames(),
		Logger:  logger,
		NoColor: c.NoColor,
	})
}

func setupLogger(debug bool, level string) *log.Logger {
	logger := log.New(os.Stderr)
	if debug {
		logger.SetLevel(log.DebugLevel)
		return logger
	}
	if parsed, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
	return logger
}
