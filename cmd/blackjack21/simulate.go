package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/blackjack21/internal/config"
	"github.com/lox/blackjack21/internal/fileutil"
	"github.com/lox/blackjack21/internal/randutil"
	"github.com/lox/blackjack21/internal/simulator"
)

// SimulateCmd runs automated rounds and prints aggregate statistics
type SimulateCmd struct {
	Config  string        `type:"path" default:"blackjack.hcl" help:"HCL configuration file"`
	Rounds  int           `help:"Rounds per table (overrides config)"`
	Tables  int           `help:"Concurrent tables (overrides config)"`
	Players int           `help:"Seats per table (overrides config)"`
	Decks   int           `help:"Decks in the shoe (overrides config)"`
	Seed    int64         `help:"Base RNG seed (0 seeds from the clock)"`
	Policy  string        `help:"Playing policy: mimic, basic or stand (overrides config)"`
	Delay   time.Duration `help:"Pause between rounds (overrides config)"`
	Output  string        `type:"path" help:"Write the report to a file instead of stdout"`
	Debug   bool          `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.LoadConfig(c.Config)
	if err != nil {
		return err
	}

	sim := cfg.Simulation
	if c.Rounds != 0 {
		sim.Rounds = c.Rounds
	}
	if c.Tables != 0 {
		sim.Tables = c.Tables
	}
	if c.Players != 0 {
		sim.Players = c.Players
	}
	if c.Decks != 0 {
		cfg.Table.Decks = c.Decks
	}
	if c.Seed != 0 {
		sim.Seed = c.Seed
	}
	if c.Policy != "" {
		sim.Policy = c.Policy
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	delay := c.Delay
	if delay == 0 {
		delay, err = sim.PauseDuration()
		if err != nil {
			return err
		}
	}

	seed := sim.Seed
	if seed == 0 {
		seed = randutil.NewFromTime().Int64()
	}

	logger := setupLogger(c.Debug, cfg.Table.LogLevel)
	logger.Info("starting simulation",
		"rounds", sim.Rounds,
		"tables", sim.Tables,
		"players", sim.Players,
		"decks", cfg.Table.Decks,
		"policy", sim.Policy,
		"seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := simulator.New(simulator.Config{
		Rounds:  sim.Rounds,
		Tables:  sim.Tables,
		Players: sim.Players,
		Decks:   cfg.Table.Decks,
		Seed:    seed,
		Policy:  sim.Policy,
		Delay:   delay,
		Logger:  logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	if c.Output != "" {
		return fileutil.WriteFileAtomic(c.Output, []byte(stats.Summary()+"\n"), 0o644)
	}
	fmt.Println(stats.Summary())
	return nil
}
