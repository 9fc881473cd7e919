package deck

import (
	"errors"
	"testing"

	"github.com/lox/blackjack21/internal/randutil"
)

func TestShoeBuild(t *testing.T) {
	tests := []struct {
		decks    int
		expected int
	}{
		{1, 52},
		{2, 104},
		{6, 312},
	}

	for _, tt := range tests {
		shoe := NewShoe(tt.decks, randutil.New(1))

		// Build fills the source only; the live sequence stays empty
		// until the first shuffle.
		if got := shoe.Count(); got != 0 {
			t.Errorf("Count() before shuffle = %d, want 0", got)
		}
		if got := shoe.SourceCount(); got != tt.expected {
			t.Errorf("SourceCount() with %d decks = %d, want %d", tt.decks, got, tt.expected)
		}

		shoe.Shuffle()
		if got := shoe.Count(); got != tt.expected {
			t.Errorf("Count() after shuffle = %d, want %d", got, tt.expected)
		}
	}
}

func TestShoeDrawFIFO(t *testing.T) {
	shoe := NewShoe(1, randutil.New(1))
	cards := MustParseCards("AsKd9h2c")
	shoe.Load(cards...)

	for i, want := range cards {
		got, err := shoe.Draw()
		if err != nil {
			t.Fatalf("Draw() %d: unexpected error %v", i, err)
		}
		if got != want {
			t.Errorf("Draw() %d = %v, want %v", i, got, want)
		}
		if remaining := shoe.Count(); remaining != len(cards)-i-1 {
			t.Errorf("Count() after draw %d = %d, want %d", i, remaining, len(cards)-i-1)
		}
	}
}

func TestShoeDrawEmpty(t *testing.T) {
	shoe := NewShoe(1, randutil.New(1))

	_, err := shoe.Draw()
	if !errors.Is(err, ErrShoeEmpty) {
		t.Fatalf("Draw() on unshuffled shoe: error = %v, want ErrShoeEmpty", err)
	}

	shoe.Load(MustParseCards("As")...)
	if _, err := shoe.Draw(); err != nil {
		t.Fatalf("Draw() on loaded shoe: unexpected error %v", err)
	}

	_, err = shoe.Draw()
	if !errors.Is(err, ErrShoeEmpty) {
		t.Fatalf("Draw() on drained shoe: error = %v, want ErrShoeEmpty", err)
	}
	if got := shoe.Count(); got != 0 {
		t.Errorf("Count() on drained shoe = %d, want 0", got)
	}
}

func TestShufflePreservesMultiset(t *testing.T) {
	shoe := NewShoe(2, randutil.New(7))
	shoe.Shuffle()

	counts := make(map[Card]int)
	for {
		card, err := shoe.Draw()
		if err != nil {
			break
		}
		counts[card]++
	}

	if len(counts) != 52 {
		t.Fatalf("drew %d distinct cards, want 52", len(counts))
	}
	for card, n := range counts {
		if n != 2 {
			t.Errorf("card %v drawn %d times, want 2 (two decks)", card, n)
		}
	}
}

func TestShuffleChangesOrderBetweenShuffles(t *testing.T) {
	shoe := NewShoe(1, randutil.New(99))
	shoe.Shuffle()
	first := shoe.Remaining()
	shoe.Shuffle()
	second := shoe.Remaining()

	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("two consecutive shuffles produced an identical order")
	}
}

// TestShuffleUniformity checks the top card distribution over many
// shuffles: each of the 52 cards should land on top roughly 1/52 of
// the time. A loose tolerance keeps the test deterministic under the
// fixed seed while still catching a biased shuffle.
func TestShuffleUniformity(t *testing.T) {
	const trials = 52000
	shoe := NewShoe(1, randutil.New(1234))

	counts := make(map[Card]int)
	for i := 0; i < trials; i++ {
		shoe.Shuffle()
		card, err := shoe.Draw()
		if err != nil {
			t.Fatalf("Draw(): %v", err)
		}
		counts[card]++
	}

	expected := trials / 52 // 1000
	for card, n := range counts {
		if n < expected/2 || n > expected*2 {
			t.Errorf("card %v on top %d times, expected around %d", card, n, expected)
		}
	}
	if len(counts) != 52 {
		t.Errorf("only %d distinct cards seen on top, want 52", len(counts))
	}
}

func TestBuildResetsShoe(t *testing.T) {
	shoe := NewShoe(1, randutil.New(5))
	shoe.Shuffle()
	if _, err := shoe.Draw(); err != nil {
		t.Fatalf("Draw(): %v", err)
	}

	shoe.Build(3)
	if got := shoe.Count(); got != 0 {
		t.Errorf("Count() after rebuild = %d, want 0", got)
	}
	if got := shoe.SourceCount(); got != 156 {
		t.Errorf("SourceCount() after rebuild = %d, want 156", got)
	}
}
