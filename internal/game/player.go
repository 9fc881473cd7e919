package game

import (
	"fmt"

	"github.com/lox/blackjack21/internal/deck"
)

// HandID addresses one of a player's hands
type HandID int

const (
	HandFirst HandID = iota
	HandSplit
)

// String returns the string representation of a hand id
func (id HandID) String() string {
	switch id {
	case HandFirst:
		return "first"
	case HandSplit:
		return "split"
	default:
		return "unknown"
	}
}

// Player owns one hand, or two after a split. The split hand is nil
// until a successful split, so an unsplit second hand is never
// addressable. A player splits at most once per round; no resplits.
type Player struct {
	name             string
	first            *Hand
	split            *Hand
	insured          bool
	insuranceCorrect bool
}

// NewPlayer creates a player with a single empty hand
func NewPlayer(name string) *Player {
	p := &Player{name: name}
	p.ClearHands()
	return p
}

// Name returns the player's registered name
func (p *Player) Name() string {
	return p.name
}

// ClearHands resets the player for a new round: one empty first hand,
// no split hand, insurance cleared
func (p *Player) ClearHands() {
	p.first = NewHand()
	p.split = nil
	p.insured = false
	p.insuranceCorrect = false
}

// IsSplit returns true once the player has split their hand this round
func (p *Player) IsSplit() bool {
	return p.split != nil
}

// First returns the player's first hand, which always exists
func (p *Player) First() *Hand {
	return p.first
}

// SplitHand returns the player's split hand, or ErrHandNotSplit while
// the player holds a single hand
func (p *Player) SplitHand() (*Hand, error) {
	if p.split == nil {
		return nil, fmt.Errorf("player %s: %w", p.name, ErrHandNotSplit)
	}
	return p.split, nil
}

// Hand returns the hand addressed by id
func (p *Player) Hand(id HandID) (*Hand, error) {
	if id == HandFirst {
		return p.first, nil
	}
	return p.SplitHand()
}

// Hands returns the player's live hands in play order
func (p *Player) Hands() []*Hand {
	if p.split == nil {
		return []*Hand{p.first}
	}
	return []*Hand{p.first, p.split}
}

// CanSplit returns true while the player holds a single two-card hand
// of matching ranks
func (p *Player) CanSplit() bool {
	return p.split == nil && p.first.HasSplittablePair()
}

// CanFold reports whether the player may surrender: only an unsplit
// two-card hand can fold
func (p *Player) CanFold() bool {
	return p.split == nil && p.first.Count() == 2
}

// CanHit returns true while the addressed hand is under 21
func (p *Player) CanHit(id HandID) bool {
	h, err := p.Hand(id)
	return err == nil && h.Value() < MaxHandValue
}

// CanStand returns true while the addressed hand is under 21. The
// condition deliberately matches CanHit: standing is legal whenever
// the hand is still live.
func (p *Player) CanStand(id HandID) bool {
	h, err := p.Hand(id)
	return err == nil && h.Value() < MaxHandValue
}

// CanDouble returns true when the addressed hand is two cards valued
// between 9 and 11
func (p *Player) CanDouble(id HandID) bool {
	h, err := p.Hand(id)
	return err == nil && h.CanDouble()
}

// Hit adds a card to the addressed hand
func (p *Player) Hit(id HandID, card deck.Card) error {
	h, err := p.Hand(id)
	if err != nil {
		return err
	}
	if !p.CanHit(id) {
		return fmt.Errorf("cannot hit %s hand at %d: %w", id, h.Value(), ErrInvalidHandAction)
	}
	h.AddCard(card)
	return nil
}

// Stand commits a stand on the addressed hand
func (p *Player) Stand(id HandID) error {
	h, err := p.Hand(id)
	if err != nil {
		return err
	}
	if !p.CanStand(id) {
		return fmt.Errorf("cannot stand %s hand at %d: %w", id, h.Value(), ErrInvalidHandAction)
	}
	h.StandHand()
	return nil
}

// Double commits a double on the addressed hand and adds the final card
func (p *Player) Double(id HandID, card deck.Card) error {
	h, err := p.Hand(id)
	if err != nil {
		return err
	}
	if !p.CanDouble(id) {
		return fmt.Errorf("cannot double %s hand: %w", id, ErrInvalidHandAction)
	}
	h.DoubleCard(card)
	return nil
}

// Fold surrenders the player's unsplit two-card hand
func (p *Player) Fold() error {
	if !p.CanFold() {
		return fmt.Errorf("cannot fold: %w", ErrInvalidHandAction)
	}
	p.first.FoldHand()
	return nil
}

// Split moves the second card of the first hand into a new split hand.
// The caller owes one fresh card to each hand afterwards; Table.Split
// honours that contract.
func (p *Player) Split() error {
	if !p.CanSplit() {
		return fmt.Errorf("player %s: %w", p.name, ErrInvalidSplit)
	}

	split := NewHand()
	split.AddCard(p.first.SplitOffSecondCard())
	p.split = split
	return nil
}

// PlaceInsurance records an insurance bet against the given dealer
// hand value. The bet is correct iff the dealer holds 21. Only
// meaningful while the dealer shows an ace; the engine gates the offer.
func (p *Player) PlaceInsurance(dealerValue int) {
	p.insured = true
	p.insuranceCorrect = dealerValue == MaxHandValue
}

// Insured returns true if the player placed an insurance bet this round
func (p *Player) Insured() bool {
	return p.insured
}

// InsuranceCorrect returns true if the placed insurance bet paid out
func (p *Player) InsuranceCorrect() bool {
	return p.insuranceCorrect
}

// ResolveRound resolves the player's hands against the dealer's hand.
// Only an unsplit single hand is eligible for the blackjack bonus; a
// split hand's two-card 21 resolves as a plain 21.
func (p *Player) ResolveRound(dealer *Hand) {
	if p.split == nil {
		p.first.SetResultVersus(dealer, true)
		return
	}
	p.first.SetResultVersus(dealer, false)
	p.split.SetResultVersus(dealer, false)
}
