package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack21/internal/deck"
	"github.com/lox/blackjack21/internal/game"
	"github.com/lox/blackjack21/internal/randutil"
	"github.com/lox/blackjack21/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds  int   // rounds per table
	Tables  int   // independent tables, run concurrently
	Players int   // seats per table
	Decks   int   // decks per shoe
	Seed    int64 // base RNG seed; each table derives its own
	Policy  string

	// Delay pauses between rounds, for watching a live run. Zero
	// means full speed.
	Delay time.Duration

	// Clock defaults to the real clock; tests inject a mock
	Clock quartz.Clock

	Logger *log.Logger
}

// Simulator plays automated blackjack rounds and aggregates outcomes
type Simulator struct {
	config Config
	clock  quartz.Clock
}

// New creates a simulator with the given configuration
func New(config Config) *Simulator {
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config, clock: clock}
}

// Run plays every table to completion and returns the merged
// statistics. Tables are fully independent: each owns its shoe,
// players and RNG, so they run concurrently without sharing state.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	policy, err := NewPolicy(s.config.Policy)
	if err != nil {
		return nil, err
	}

	tables := s.config.Tables
	if tables < 1 {
		tables = 1
	}

	results := make([]*statistics.Statistics, tables)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < tables; i++ {
		g.Go(func() error {
			stats, err := s.runTable(ctx, i, policy)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := statistics.New()
	for _, stats := range results {
		merged.Merge(stats)
	}
	return merged, nil
}

func (s *Simulator) runTable(ctx context.Context, index int, policy Policy) (*statistics.Statistics, error) {
	logger := s.config.Logger.WithPrefix(fmt.Sprintf("table-%d", index))
	rng := randutil.New(s.config.Seed + int64(index))
	shoe := deck.NewShoe(s.config.Decks, rng)
	table := game.NewTable(shoe, logger)

	for seat := 0; seat < s.config.Players; seat++ {
		if _, err := table.AddPlayer(fmt.Sprintf("Bot %d-%d", index, seat+1)); err != nil {
			return nil, err
		}
	}

	stats := statistics.New()
	for round := 0; round < s.config.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		table.NewRound()
		if err := s.playRound(table, policy, stats); err != nil {
			if errors.Is(err, deck.ErrShoeEmpty) {
				// fatal to this round only; the next NewRound
				// reshuffles the shoe
				logger.Warn("shoe ran dry mid-round, abandoning round", "round", round)
				continue
			}
			return nil, err
		}

		if s.config.Delay > 0 && round < s.config.Rounds-1 {
			if err := s.pause(ctx); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("table complete", "rounds", stats.Rounds, "hands", stats.Hands)
	return stats, nil
}

func (s *Simulator) pause(ctx context.Context) error {
	timer := s.clock.NewTimer(s.config.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// playRound drives one full round through the engine: deal, insurance,
// player turns, dealer auto-play and resolution.
func (s *Simulator) playRound(table *game.Table, policy Policy, stats *statistics.Statistics) error {
	if err := table.DealInitialCards(); err != nil {
		return err
	}

	if table.DealerShowsAce() {
		for _, p := range table.Players() {
			if policy.Insure(p.First()) {
				table.PlaceInsurance(p)
				stats.RecordInsurance(p.InsuranceCorrect())
			}
		}
	}

	dealerUp := table.Dealer().First().Cards()[0]
	dealerNatural := table.Dealer().First().Value() == game.MaxHandValue

	if !dealerNatural {
		for _, p := range table.Players() {
			if err := s.playTurn(table, p, policy, dealerUp, stats); err != nil {
				return err
			}
		}
		if err := table.AutoPlayDealer(); err != nil {
			return err
		}
	}

	table.ConcludeRound()

	for _, p := range table.Players() {
		for _, h := range p.Hands() {
			stats.RecordHand(statistics.HandOutcome{
				Player: p.Name(),
				Result: h.Result(),
				Action: h.Action(),
				Value:  h.Value(),
				Cards:  h.Count(),
			})
		}
	}
	stats.RecordRound(table.Dealer().First().Result())
	return nil
}

func (s *Simulator) playTurn(table *game.Table, p *game.Player, policy Policy, dealerUp deck.Card, stats *statistics.Statistics) error {
	// a dealt natural ends the turn immediately
	if p.First().IsBlackjack() {
		return nil
	}

	if p.CanSplit() && policy.WantsSplit(p.First().Cards()[0].Rank) {
		if err := table.Split(p); err != nil {
			return err
		}
		stats.RecordSplit()
	}

	for _, id := range []game.HandID{game.HandFirst, game.HandSplit} {
		hand, err := p.Hand(id)
		if err != nil {
			break // unsplit, no second hand to play
		}
		if err := s.playHand(table, p, id, hand, policy, dealerUp); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) playHand(table *game.Table, p *game.Player, id game.HandID, hand *game.Hand, policy Policy, dealerUp deck.Card) error {
	for p.CanHit(id) {
		switch policy.Action(hand, dealerUp) {
		case game.Double:
			if p.CanDouble(id) {
				_, err := table.Double(p, id)
				return err
			}
			// double not available, play on as a hit
			if _, err := table.Hit(p, id); err != nil {
				return err
			}

		case game.Hit:
			if _, err := table.Hit(p, id); err != nil {
				return err
			}

		case game.Fold:
			if p.CanFold() {
				return p.Fold()
			}
			return p.Stand(id)

		default: // Stand
			return p.Stand(id)
		}
	}
	return nil
}
