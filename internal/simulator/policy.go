package simulator

import (
	"fmt"

	"github.com/lox/blackjack21/internal/deck"
	"github.com/lox/blackjack21/internal/game"
)

// Policy decides how a simulated player plays a hand. Implementations
// are stateless; the simulator applies the decision through the
// engine's guarded operations.
type Policy interface {
	Name() string

	// Insure is asked once per round when the dealer shows an ace
	Insure(hand *game.Hand) bool

	// WantsSplit is asked once before the hand is played, only when
	// the engine allows a split
	WantsSplit(pair deck.Rank) bool

	// Action returns the next action for a live hand: Hit, Stand,
	// Double or Fold. Anything the engine rejects is downgraded by
	// the simulator.
	Action(hand *game.Hand, dealerUp deck.Card) game.Action
}

// NewPolicy returns the named policy
func NewPolicy(name string) (Policy, error) {
	switch name {
	case "mimic":
		return mimicPolicy{}, nil
	case "basic":
		return basicPolicy{}, nil
	case "stand":
		return standPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}

// mimicPolicy plays exactly like the dealer: hit below 17, never
// split, double or insure.
type mimicPolicy struct{}

func (mimicPolicy) Name() string              { return "mimic" }
func (mimicPolicy) Insure(*game.Hand) bool    { return false }
func (mimicPolicy) WantsSplit(deck.Rank) bool { return false }

func (mimicPolicy) Action(hand *game.Hand, _ deck.Card) game.Action {
	if hand.Value() < game.DealerStandValue {
		return game.Hit
	}
	return game.Stand
}

// basicPolicy is a cut-down basic strategy: always split aces and
// eights, double two-card 9 to 11, otherwise hit below 17 and stand
// against a weak dealer up-card with a stiff hand.
type basicPolicy struct{}

func (basicPolicy) Name() string           { return "basic" }
func (basicPolicy) Insure(*game.Hand) bool { return false }

func (basicPolicy) WantsSplit(pair deck.Rank) bool {
	return pair == deck.Ace || pair == deck.Eight
}

func (basicPolicy) Action(hand *game.Hand, dealerUp deck.Card) game.Action {
	if hand.CanDouble() {
		return game.Double
	}

	v := hand.Value()
	// stand a stiff 12-16 against a dealer bust card
	if v >= 12 && v <= 16 && dealerUp.PointValue() >= 2 && dealerUp.PointValue() <= 6 {
		return game.Stand
	}
	if v < game.DealerStandValue {
		return game.Hit
	}
	return game.Stand
}

// standPolicy stands on everything and always takes insurance, the
// worst-case baseline.
type standPolicy struct{}

func (standPolicy) Name() string              { return "stand" }
func (standPolicy) Insure(*game.Hand) bool    { return true }
func (standPolicy) WantsSplit(deck.Rank) bool { return false }

func (standPolicy) Action(*game.Hand, deck.Card) game.Action {
	return game.Stand
}
