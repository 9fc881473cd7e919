package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack21/internal/deck"
)

func playerWith(t *testing.T, cards string) *Player {
	t.Helper()
	p := NewPlayer("tester")
	for _, c := range deck.MustParseCards(cards) {
		p.First().AddCard(c)
	}
	return p
}

func TestSplitGuards(t *testing.T) {
	// not a pair
	p := playerWith(t, "KsQd")
	assert.False(t, p.CanSplit())
	assert.ErrorIs(t, p.Split(), ErrInvalidSplit)
	assert.Equal(t, 2, p.First().Count(), "rejected split leaves the hand untouched")

	// split hand is unaddressable before a split
	_, err := p.SplitHand()
	assert.ErrorIs(t, err, ErrHandNotSplit)
	_, err = p.Hand(HandSplit)
	assert.ErrorIs(t, err, ErrHandNotSplit)
}

func TestSplitMovesSecondCard(t *testing.T) {
	p := playerWith(t, "8s8d")
	require.True(t, p.CanSplit())
	require.NoError(t, p.Split())

	assert.True(t, p.IsSplit())
	assert.Equal(t, 1, p.First().Count())
	assert.Equal(t, 8, p.First().Value())

	split, err := p.SplitHand()
	require.NoError(t, err)
	assert.Equal(t, 1, split.Count())
	assert.Equal(t, 8, split.Value())
	assert.Equal(t, deck.NewCard(deck.Eight, deck.Diamonds), split.Cards()[0])

	// one split per round, no resplits
	assert.False(t, p.CanSplit())
	assert.ErrorIs(t, p.Split(), ErrInvalidSplit)
}

func TestSplitAceBookkeeping(t *testing.T) {
	p := playerWith(t, "AsAd")
	require.NoError(t, p.Split())

	split, err := p.SplitHand()
	require.NoError(t, err)

	// each hand holds one soft ace after the split
	assert.Equal(t, 11, p.First().Value())
	assert.Equal(t, 11, split.Value())

	require.NoError(t, p.Hit(HandFirst, deck.NewCard(deck.Nine, deck.Hearts)))
	require.NoError(t, p.Hit(HandSplit, deck.NewCard(deck.King, deck.Clubs)))
	assert.Equal(t, 20, p.First().Value())
	assert.Equal(t, 21, split.Value())
}

func TestFoldGuards(t *testing.T) {
	p := playerWith(t, "Ts6h")
	assert.True(t, p.CanFold())
	require.NoError(t, p.Fold())
	assert.Equal(t, Fold, p.First().Action())

	// fold is only offered before any hit
	p2 := playerWith(t, "2s3h")
	require.NoError(t, p2.Hit(HandFirst, deck.NewCard(deck.Four, deck.Clubs)))
	assert.False(t, p2.CanFold())
	assert.ErrorIs(t, p2.Fold(), ErrInvalidHandAction)

	// a split player cannot fold
	p3 := playerWith(t, "8s8d")
	require.NoError(t, p3.Split())
	assert.False(t, p3.CanFold())
	assert.ErrorIs(t, p3.Fold(), ErrInvalidHandAction)
}

func TestHitAndStandShareTheirGuard(t *testing.T) {
	p := playerWith(t, "KsQh")
	assert.True(t, p.CanHit(HandFirst))
	assert.True(t, p.CanStand(HandFirst))

	// at exactly 21 both hit and stand are off; the turn is simply over
	p21 := playerWith(t, "7s7h7d")
	assert.False(t, p21.CanHit(HandFirst))
	assert.False(t, p21.CanStand(HandFirst))
	assert.ErrorIs(t, p21.Hit(HandFirst, deck.NewCard(deck.Two, deck.Spades)), ErrInvalidHandAction)
	assert.ErrorIs(t, p21.Stand(HandFirst), ErrInvalidHandAction)
	assert.Equal(t, 3, p21.First().Count(), "rejected hit adds no card")
}

func TestDoubleGuards(t *testing.T) {
	p := playerWith(t, "6s5d")
	assert.True(t, p.CanDouble(HandFirst))
	require.NoError(t, p.Double(HandFirst, deck.NewCard(deck.King, deck.Hearts)))
	assert.Equal(t, Double, p.First().Action())
	assert.Equal(t, 21, p.First().Value())

	// three cards, no second double
	assert.False(t, p.CanDouble(HandFirst))
	assert.ErrorIs(t, p.Double(HandFirst, deck.NewCard(deck.Two, deck.Spades)), ErrInvalidHandAction)

	p2 := playerWith(t, "4s4d") // value 8
	assert.False(t, p2.CanDouble(HandFirst))
	assert.ErrorIs(t, p2.Double(HandFirst, deck.NewCard(deck.Two, deck.Spades)), ErrInvalidHandAction)
}

func TestDoubleOnSplitHand(t *testing.T) {
	p := playerWith(t, "5s5d")
	require.NoError(t, p.Split())
	require.NoError(t, p.Hit(HandFirst, deck.NewCard(deck.Four, deck.Hearts)))
	require.NoError(t, p.Hit(HandSplit, deck.NewCard(deck.Six, deck.Clubs)))

	// first hand 9, split hand 11: both doubleable per hand
	assert.True(t, p.CanDouble(HandFirst))
	assert.True(t, p.CanDouble(HandSplit))
	require.NoError(t, p.Double(HandSplit, deck.NewCard(deck.Ten, deck.Hearts)))

	split, err := p.SplitHand()
	require.NoError(t, err)
	assert.Equal(t, 21, split.Value())
	assert.Equal(t, Double, split.Action())
}

func TestInsurance(t *testing.T) {
	p := playerWith(t, "KsQh")
	assert.False(t, p.Insured())

	p.PlaceInsurance(21)
	assert.True(t, p.Insured())
	assert.True(t, p.InsuranceCorrect())

	p2 := playerWith(t, "KsQh")
	p2.PlaceInsurance(16)
	assert.True(t, p2.Insured())
	assert.False(t, p2.InsuranceCorrect())
}

func TestClearHands(t *testing.T) {
	p := playerWith(t, "8s8d")
	require.NoError(t, p.Split())
	p.PlaceInsurance(21)

	p.ClearHands()
	assert.False(t, p.IsSplit())
	assert.Equal(t, 0, p.First().Count())
	assert.False(t, p.Insured())
	assert.False(t, p.InsuranceCorrect())
	assert.Equal(t, NoAction, p.First().Action())
	assert.Equal(t, NoResult, p.First().Result())
}

func TestResolveRoundSplitHandsLoseBlackjackBonus(t *testing.T) {
	dealer := handOf(t, "Ks9h")

	p := playerWith(t, "AsAd")
	require.NoError(t, p.Split())
	require.NoError(t, p.Hit(HandFirst, deck.NewCard(deck.King, deck.Hearts)))
	require.NoError(t, p.Hit(HandSplit, deck.NewCard(deck.Nine, deck.Clubs)))

	p.ResolveRound(dealer)
	// post-split ace+king is a plain 21, not a natural
	assert.Equal(t, WonHigher, p.First().Result())
	split, err := p.SplitHand()
	require.NoError(t, err)
	assert.Equal(t, WonHigher, split.Result())
}
