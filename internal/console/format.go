package console

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack21/internal/deck"
	"github.com/lox/blackjack21/internal/game"
)

// FormatCard renders a single card, red suits in red
func FormatCard(c deck.Card) string {
	if c.Suit.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

// FormatCards renders a run of cards separated by spaces
func FormatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = FormatCard(c)
	}
	return strings.Join(parts, " ")
}

// FormatHand renders a hand with its current value
func FormatHand(h *game.Hand) string {
	if h.Count() == 0 {
		return InfoStyle.Render("(no cards)")
	}
	return fmt.Sprintf("%s (%d)", FormatCards(h.Cards()), h.Value())
}

// FormatResult renders a round result, coloured by outcome
func FormatResult(r game.Result) string {
	switch {
	case r.Won():
		return WonStyle.Render(r.String())
	case r.Pushed():
		return PushStyle.Render(r.String())
	case r.Lost():
		return LostStyle.Render(r.String())
	default:
		return InfoStyle.Render(r.String())
	}
}

func formatHandLine(name string, h *game.Hand) string {
	return fmt.Sprintf("  %s: %s", name, FormatHand(h))
}
