package game

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack21/internal/deck"
)

const (
	// DealerName identifies the house player
	DealerName = "Blackjack Dealer"

	// LowWaterMark is the shoe size at or below which NewRound reshuffles
	LowWaterMark = 10

	// DealerStandValue is the total the dealer stands on during auto-play
	DealerStandValue = 17

	// MaxTablePlayers is the seat limit the presentation layer enforces
	MaxTablePlayers = 7
)

// Table is the round engine for one blackjack table: a dealer, an
// ordered list of registered players and the shoe. One table is owned
// by one caller; every operation runs to completion before returning
// and the per-round sequence (NewRound, deal, act, resolve) is a
// single critical section if ever shared.
type Table struct {
	dealer  *Player
	players []*Player
	shoe    *deck.Shoe
	logger  *log.Logger
}

// NewTable creates a table around the given shoe
func NewTable(shoe *deck.Shoe, logger *log.Logger) *Table {
	return &Table{
		dealer: NewPlayer(DealerName),
		shoe:   shoe,
		logger: logger,
	}
}

// Dealer returns the house player
func (t *Table) Dealer() *Player {
	return t.dealer
}

// Players returns the registered players in registration order
func (t *Table) Players() []*Player {
	return t.players
}

// Shoe returns the table's shoe
func (t *Table) Shoe() *deck.Shoe {
	return t.shoe
}

// AddPlayer registers a new player. Names must be non-empty and unique
// on the table.
func (t *Table) AddPlayer(name string) (*Player, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyPlayerName
	}
	for _, p := range t.players {
		if p.Name() == name {
			return nil, fmt.Errorf("player %q: %w", name, ErrPlayerExists)
		}
	}

	player := NewPlayer(name)
	t.players = append(t.players, player)
	t.logger.Debug("player registered", "name", name, "seats", len(t.players))
	return player, nil
}

// Player returns the registered player at the given index
func (t *Table) Player(index int) (*Player, error) {
	if index < 0 || index >= len(t.players) {
		return nil, fmt.Errorf("index %d: %w", index, ErrPlayerNotFound)
	}
	return t.players[index], nil
}

// PlayerByName returns the registered player with the given name
func (t *Table) PlayerByName(name string) (*Player, error) {
	for _, p := range t.players {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("name %q: %w", name, ErrPlayerNotFound)
}

// NewRound clears the dealer's and every player's hands and reshuffles
// the shoe when it has run down to the low-water mark. Reshuffles only
// ever happen here, never mid-round.
func (t *Table) NewRound() {
	t.dealer.ClearHands()
	for _, p := range t.players {
		p.ClearHands()
	}

	if t.shoe.Count() <= LowWaterMark {
		t.shoe.Shuffle()
		t.logger.Debug("shoe reshuffled", "cards", t.shoe.Count())
	}
}

// DealInitialCards deals two passes of one card each: every player in
// registration order, then the dealer. After the deal the dealer's own
// blackjack result is recorded, since both dealer cards are fully
// known at deal time (no hole-card concealment is modelled).
func (t *Table) DealInitialCards() error {
	const passes = 2

	for i := 0; i < passes; i++ {
		for _, p := range t.players {
			card, err := t.shoe.Draw()
			if err != nil {
				return err
			}
			p.First().AddCard(card)
		}

		card, err := t.shoe.Draw()
		if err != nil {
			return err
		}
		t.dealer.First().AddCard(card)
	}

	t.dealer.First().SetDealerResult()
	t.logger.Debug("initial cards dealt",
		"players", len(t.players),
		"dealerShows", t.dealer.First().Cards()[0],
		"remaining", t.shoe.Count())
	return nil
}

// DealerShowsAce reports whether the dealer's first dealt card is an
// ace, the gate for offering insurance
func (t *Table) DealerShowsAce() bool {
	cards := t.dealer.First().Cards()
	return len(cards) > 0 && cards[0].IsAce()
}

// Draw removes the next card from the shoe. This is the sole source of
// new cards during play.
func (t *Table) Draw() (deck.Card, error) {
	return t.shoe.Draw()
}

// Hit draws a card into the addressed hand of the given player. The
// guard is checked before the draw so a rejected hit leaves both the
// hand and the shoe untouched.
func (t *Table) Hit(p *Player, id HandID) (deck.Card, error) {
	if _, err := p.Hand(id); err != nil {
		return deck.Card{}, err
	}
	if !p.CanHit(id) {
		return deck.Card{}, fmt.Errorf("player %s cannot hit %s hand: %w", p.Name(), id, ErrInvalidHandAction)
	}

	card, err := t.shoe.Draw()
	if err != nil {
		return deck.Card{}, err
	}
	if err := p.Hit(id, card); err != nil {
		return deck.Card{}, err
	}

	t.logger.Debug("hit", "player", p.Name(), "hand", id, "card", card)
	return card, nil
}

// Double commits a double on the addressed hand and draws its final
// card. The guard is checked before the draw.
func (t *Table) Double(p *Player, id HandID) (deck.Card, error) {
	if _, err := p.Hand(id); err != nil {
		return deck.Card{}, err
	}
	if !p.CanDouble(id) {
		return deck.Card{}, fmt.Errorf("player %s cannot double %s hand: %w", p.Name(), id, ErrInvalidHandAction)
	}

	card, err := t.shoe.Draw()
	if err != nil {
		return deck.Card{}, err
	}
	if err := p.Double(id, card); err != nil {
		return deck.Card{}, err
	}

	t.logger.Debug("double", "player", p.Name(), "hand", id, "card", card)
	return card, nil
}

// Split splits the player's pair and completes the engine contract by
// dealing one fresh card to each of the two hands
func (t *Table) Split(p *Player) error {
	if err := p.Split(); err != nil {
		return err
	}

	for _, id := range []HandID{HandFirst, HandSplit} {
		card, err := t.shoe.Draw()
		if err != nil {
			return err
		}
		hand, herr := p.Hand(id)
		if herr != nil {
			return herr
		}
		hand.AddCard(card)
	}

	t.logger.Debug("split", "player", p.Name(),
		"first", p.First().String(), "firstValue", p.First().Value())
	return nil
}

// PlaceInsurance records an insurance bet for the player against the
// dealer's current hand value. Callers gate the offer on DealerShowsAce.
func (t *Table) PlaceInsurance(p *Player) {
	p.PlaceInsurance(t.dealer.First().Value())
	t.logger.Debug("insurance placed", "player", p.Name(), "correct", p.InsuranceCorrect())
}

// AutoPlayDealer draws cards into the dealer's hand until it reaches
// 17, hitting soft and hard totals alike
func (t *Table) AutoPlayDealer() error {
	for t.dealer.First().Value() < DealerStandValue {
		card, err := t.shoe.Draw()
		if err != nil {
			return err
		}
		t.dealer.First().AddCard(card)
		t.logger.Debug("dealer hits", "card", card, "value", t.dealer.First().Value())
	}
	return nil
}

// ConcludeRound records the dealer's own blackjack or bust result and
// resolves every player's hands against the dealer's hand
func (t *Table) ConcludeRound() {
	t.dealer.First().SetDealerResult()

	for _, p := range t.players {
		p.ResolveRound(t.dealer.First())
		for i, h := range p.Hands() {
			t.logger.Debug("hand resolved", "player", p.Name(),
				"hand", HandID(i), "value", h.Value(), "result", h.Result())
		}
	}
}

// AddDealerCards appends cards directly to the dealer's hand, for
// scripted rounds and tests
func (t *Table) AddDealerCards(cards ...deck.Card) {
	for _, card := range cards {
		t.dealer.First().AddCard(card)
	}
}

// AddPlayerCards appends cards directly to the named player's first
// hand, for scripted rounds and tests
func (t *Table) AddPlayerCards(name string, cards ...deck.Card) error {
	p, err := t.PlayerByName(name)
	if err != nil {
		return err
	}
	for _, card := range cards {
		p.First().AddCard(card)
	}
	return nil
}
