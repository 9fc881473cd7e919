package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrShoeEmpty is returned by Draw when the live sequence is exhausted.
// A draw failure is fatal to the round in progress; the shoe is only
// rebuilt or reshuffled at round boundaries.
var ErrShoeEmpty = errors.New("shoe is empty")

// DeckSize is the number of cards in a single standard deck.
const DeckSize = 52

// Shoe holds the live drawable card sequence for a table, built from
// one or more standard 52-card decks. The source set keeps a fresh,
// unshuffled copy of every card so the shoe can be reshuffled without
// rebuilding. Draws advance a front cursor over the live slice rather
// than reslicing, preserving FIFO order.
type Shoe struct {
	live   []Card
	next   int // cursor into live; cards before it have been drawn
	source []Card
	rng    *rand.Rand
}

// NewShoe creates a shoe from deckCount standard decks. The live
// sequence starts empty; call Shuffle before the first draw. The range
// of deckCount is the caller's responsibility to police.
func NewShoe(deckCount int, rng *rand.Rand) *Shoe {
	s := &Shoe{rng: rng}
	s.Build(deckCount)
	return s
}

// Build clears both the live and source sets and regenerates the
// source from deckCount standard decks. It does not shuffle: the live
// sequence stays empty until the next Shuffle.
func (s *Shoe) Build(deckCount int) {
	s.live = nil
	s.next = 0
	s.source = make([]Card, 0, deckCount*DeckSize)

	for d := 0; d < deckCount; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Ace; rank <= King; rank++ {
				s.source = append(s.source, NewCard(rank, suit))
			}
		}
	}
}

// Load replaces both the source and live sets with the given cards in
// order, so draws are fully deterministic. Used for fixed-deal test
// rounds and scripted scenarios.
func (s *Shoe) Load(cards ...Card) {
	s.source = append([]Card(nil), cards...)
	s.live = append([]Card(nil), cards...)
	s.next = 0
}

// Shuffle discards the live sequence, permutes the source set with an
// unbiased Fisher-Yates shuffle and copies the result into a fresh
// live sequence.
func (s *Shoe) Shuffle() {
	for i := len(s.source) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.source[i], s.source[j] = s.source[j], s.source[i]
	}

	s.live = append([]Card(nil), s.source...)
	s.next = 0
}

// Draw removes and returns the front card of the live sequence.
func (s *Shoe) Draw() (Card, error) {
	if s.next >= len(s.live) {
		return Card{}, ErrShoeEmpty
	}

	card := s.live[s.next]
	s.next++
	return card, nil
}

// Count returns the number of cards remaining in the live sequence.
func (s *Shoe) Count() int {
	return len(s.live) - s.next
}

// SourceCount returns the number of cards the shoe was built from.
func (s *Shoe) SourceCount() int {
	return len(s.source)
}

// Remaining returns a copy of the undealt portion of the live sequence.
func (s *Shoe) Remaining() []Card {
	return append([]Card(nil), s.live[s.next:]...)
}
