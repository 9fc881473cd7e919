package game

import (
	"strings"

	"github.com/lox/blackjack21/internal/deck"
)

// MaxHandValue is the blackjack target value
const MaxHandValue = 21

// Action records the last committed action on a hand
type Action int

const (
	NoAction Action = iota
	Fold
	Stand
	Hit
	Split
	Double
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case NoAction:
		return "none"
	case Fold:
		return "fold"
	case Stand:
		return "stand"
	case Hit:
		return "hit"
	case Split:
		return "split"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// Result is the resolved outcome of a hand against the dealer
type Result int

const (
	NoResult Result = iota
	WonHigher
	WonBlackjack
	WonFiveCardCharlie
	Bust
	Lower
	LowerVersusBlackjack
	Push
	PushBlackjack
)

// String returns the string representation of a result
func (r Result) String() string {
	switch r {
	case NoResult:
		return "none"
	case WonHigher:
		return "won higher"
	case WonBlackjack:
		return "won blackjack"
	case WonFiveCardCharlie:
		return "won 5-card charlie"
	case Bust:
		return "bust over 21"
	case Lower:
		return "lower than dealer"
	case LowerVersusBlackjack:
		return "lower than dealer blackjack"
	case Push:
		return "push"
	case PushBlackjack:
		return "push blackjack"
	default:
		return "unknown"
	}
}

// Won returns true for the winning outcomes
func (r Result) Won() bool {
	return r == WonHigher || r == WonBlackjack || r == WonFiveCardCharlie
}

// Lost returns true for the losing outcomes
func (r Result) Lost() bool {
	return r == Bust || r == Lower || r == LowerVersusBlackjack
}

// Pushed returns true for the tie outcomes
func (r Result) Pushed() bool {
	return r == Push || r == PushBlackjack
}

// Hand is an ordered set of cards belonging to one player or the
// dealer, with a running raw total (every ace counted as 1) and an ace
// counter so valuation never rescans the cards. Mutators here are
// guard-free; legality checks live on Player, which rejects an action
// before any state changes.
type Hand struct {
	cards  []deck.Card
	raw    int
	aces   int
	action Action
	result Result
}

// NewHand creates an empty hand
func NewHand() *Hand {
	return &Hand{}
}

// AddCard appends a card to the hand and updates the running totals
func (h *Hand) AddCard(card deck.Card) {
	h.cards = append(h.cards, card)
	if card.IsAce() {
		h.aces++
	}
	h.raw += card.PointValue()
}

// Cards returns a copy of the hand's cards in deal order
func (h *Hand) Cards() []deck.Card {
	return append([]deck.Card(nil), h.cards...)
}

// Count returns the number of cards in the hand
func (h *Hand) Count() int {
	return len(h.cards)
}

// Action returns the last committed hand action
func (h *Hand) Action() Action {
	return h.action
}

// Result returns the resolved outcome of the hand
func (h *Hand) Result() Result {
	return h.result
}

// Value returns the blackjack value of the hand. The raw total counts
// every ace as 1; when the hand holds an ace and promoting exactly one
// of them to 11 does not bust, the soft total is returned instead. A
// second ace is never promoted since that would always exceed 21.
func (h *Hand) Value() int {
	soft := h.raw + 10
	if h.aces == 0 || h.raw >= MaxHandValue || soft > MaxHandValue {
		return h.raw
	}
	return soft
}

// IsBlackjack returns true for a natural: exactly two cards worth 21
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.Value() == MaxHandValue
}

// HasSplittablePair returns true when the hand is exactly two cards of
// the same rank
func (h *Hand) HasSplittablePair() bool {
	return len(h.cards) == 2 && h.cards[0].Rank == h.cards[1].Rank
}

// CanDouble returns true when the hand is exactly two cards valued
// between 9 and 11
func (h *Hand) CanDouble() bool {
	v := h.Value()
	return len(h.cards) == 2 && v >= 9 && v <= 11
}

// DoubleCard commits the double action and adds the final card.
// Caller must check CanDouble first.
func (h *Hand) DoubleCard(card deck.Card) {
	h.action = Double
	h.AddCard(card)
}

// FoldHand commits the fold action; the cards are unchanged
func (h *Hand) FoldHand() {
	h.action = Fold
}

// StandHand commits the stand action; the cards are unchanged
func (h *Hand) StandHand() {
	h.action = Stand
}

// SplitOffSecondCard detaches and returns the second card, reversing
// its contribution to the running totals. Caller must check
// HasSplittablePair first; the returned card seeds the new split hand.
func (h *Hand) SplitOffSecondCard() deck.Card {
	card := h.cards[1]
	h.cards = h.cards[:1]
	if card.IsAce() {
		h.aces--
	}
	h.raw -= card.PointValue()
	return card
}

// SetDealerResult records the dealer's own standalone outcome after
// the initial deal and after auto-play: a natural blackjack or a bust.
// Anything else is left unset; the dealer's outcome versus each player
// is decided per player hand.
func (h *Hand) SetDealerResult() {
	switch {
	case h.IsBlackjack():
		h.result = WonBlackjack
	case h.Value() > MaxHandValue:
		h.result = Bust
	}
}

// SetResultVersus resolves this hand against the dealer's hand.
// naturalEligible is true only for an unsplit single hand: a post-split
// two-card 21 is just 21, not a blackjack. The rules are evaluated in
// a fixed priority order; five-card charlie only fires when no earlier
// numeric rule has already decided the hand.
func (h *Hand) SetResultVersus(dealer *Hand, naturalEligible bool) {
	if naturalEligible && h.IsBlackjack() {
		if dealer.IsBlackjack() {
			h.result = PushBlackjack
		} else {
			h.result = WonBlackjack
		}
		return
	}

	switch {
	case dealer.IsBlackjack():
		h.result = LowerVersusBlackjack
	case h.Value() > MaxHandValue:
		h.result = Bust
	case dealer.Value() > h.Value() && dealer.Value() <= MaxHandValue:
		h.result = Lower
	case dealer.Value() == h.Value():
		h.result = Push
	case len(h.cards) == 5:
		h.result = WonFiveCardCharlie
	default:
		h.result = WonHigher
	}
}

// String returns the hand as space-separated card notation (e.g. "A♠ K♦")
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
