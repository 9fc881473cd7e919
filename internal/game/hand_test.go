package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack21/internal/deck"
)

func handOf(t *testing.T, cards string) *Hand {
	t.Helper()
	h := NewHand()
	for _, c := range deck.MustParseCards(cards) {
		h.AddCard(c)
	}
	return h
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		value int
	}{
		{"single ace is soft 11", "As", 11},
		{"two aces count 12 not 22", "AsAd", 12},
		{"natural blackjack", "AsKd", 21},
		{"soft seventeen", "As6h", 17},
		{"ace demoted when soft busts", "As9h5c", 15},
		{"two aces around a seven", "As7hAd", 19},
		{"hard twenty", "KsQh", 20},
		{"bust", "KsQh5d", 25},
		{"five small cards", "2s2d2h4d5c", 15},
		{"three card twenty one", "7s7h7d", 21},
		{"empty hand", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.value, handOf(t, tt.cards).Value())
		})
	}
}

func TestIsBlackjack(t *testing.T) {
	assert.True(t, handOf(t, "AsKd").IsBlackjack())
	assert.True(t, handOf(t, "TsAh").IsBlackjack())

	// a three-card 21 is never a blackjack
	assert.False(t, handOf(t, "7s7h7d").IsBlackjack())
	assert.False(t, handOf(t, "As5h5d").IsBlackjack())

	assert.False(t, handOf(t, "AsKd3c").IsBlackjack())
	assert.False(t, handOf(t, "KsQh").IsBlackjack())
}

func TestHasSplittablePair(t *testing.T) {
	assert.True(t, handOf(t, "8s8d").HasSplittablePair())
	assert.True(t, handOf(t, "AsAd").HasSplittablePair())

	// same point value but different rank is not a pair
	assert.False(t, handOf(t, "KsQd").HasSplittablePair())

	assert.False(t, handOf(t, "8s8d8h").HasSplittablePair())
	assert.False(t, handOf(t, "8s").HasSplittablePair())
}

func TestCanDouble(t *testing.T) {
	tests := []struct {
		cards string
		want  bool
	}{
		{"4s5d", true},  // 9
		{"6s4d", true},  // 10
		{"6s5d", true},  // 11
		{"As9h", false}, // soft 20
		{"4s4d", false}, // 8
		{"7s5d", false}, // 12
		{"2s3d4h", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, handOf(t, tt.cards).CanDouble(), "cards %s", tt.cards)
	}
}

func TestSplitOffSecondCard(t *testing.T) {
	h := handOf(t, "AsAd")
	require.Equal(t, 12, h.Value())

	card := h.SplitOffSecondCard()
	assert.Equal(t, deck.NewCard(deck.Ace, deck.Diamonds), card)
	assert.Equal(t, 1, h.Count())
	assert.Equal(t, 11, h.Value(), "remaining single ace is soft 11")

	// total bookkeeping survives a split and further draws
	other := NewHand()
	other.AddCard(card)
	h.AddCard(deck.NewCard(deck.Nine, deck.Hearts))
	other.AddCard(deck.NewCard(deck.King, deck.Clubs))
	assert.Equal(t, 20, h.Value())
	assert.Equal(t, 21, other.Value())
	// the hand itself looks like a natural; split ineligibility is
	// applied at resolution time, not here
	assert.True(t, other.IsBlackjack())
}

func TestHandActions(t *testing.T) {
	h := handOf(t, "6s4d")
	assert.Equal(t, NoAction, h.Action())

	h.DoubleCard(deck.NewCard(deck.Five, deck.Hearts))
	assert.Equal(t, Double, h.Action())
	assert.Equal(t, 3, h.Count())
	assert.Equal(t, 15, h.Value())

	h2 := handOf(t, "KsQh")
	h2.StandHand()
	assert.Equal(t, Stand, h2.Action())
	assert.Equal(t, 2, h2.Count())

	h3 := handOf(t, "Ts6h")
	h3.FoldHand()
	assert.Equal(t, Fold, h3.Action())
}

func TestSetDealerResult(t *testing.T) {
	bj := handOf(t, "AsKd")
	bj.SetDealerResult()
	assert.Equal(t, WonBlackjack, bj.Result())

	bust := handOf(t, "KsQh5d")
	bust.SetDealerResult()
	assert.Equal(t, Bust, bust.Result())

	// anything else stays unresolved until compared per player
	plain := handOf(t, "Ks9h")
	plain.SetDealerResult()
	assert.Equal(t, NoResult, plain.Result())
}
