package statistics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/blackjack21/internal/game"
)

// HandOutcome is one resolved hand from a completed round
type HandOutcome struct {
	Player string
	Result game.Result
	Action game.Action
	Value  int
	Cards  int
}

// Statistics aggregates outcomes across simulated blackjack rounds
type Statistics struct {
	Rounds int
	Hands  int

	Results map[game.Result]int

	Splits  int
	Doubles int
	Folds   int

	InsuranceBets int
	InsuranceWins int

	DealerBlackjacks int
	DealerBusts      int

	valueSum int // resolved hand values, busts included
}

// New creates an empty statistics accumulator
func New() *Statistics {
	return &Statistics{Results: make(map[game.Result]int)}
}

// RecordHand adds one resolved hand
func (s *Statistics) RecordHand(o HandOutcome) {
	s.Hands++
	s.Results[o.Result]++
	s.valueSum += o.Value

	switch o.Action {
	case game.Double:
		s.Doubles++
	case game.Fold:
		s.Folds++
	}
}

// RecordRound closes out one round with the dealer's standalone result
func (s *Statistics) RecordRound(dealer game.Result) {
	s.Rounds++
	switch dealer {
	case game.WonBlackjack:
		s.DealerBlackjacks++
	case game.Bust:
		s.DealerBusts++
	}
}

// RecordSplit counts a committed split
func (s *Statistics) RecordSplit() {
	s.Splits++
}

// RecordInsurance counts an insurance bet and whether it paid
func (s *Statistics) RecordInsurance(correct bool) {
	s.InsuranceBets++
	if correct {
		s.InsuranceWins++
	}
}

// Merge folds another accumulator into this one
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.Hands += other.Hands
	for r, n := range other.Results {
		s.Results[r] += n
	}
	s.Splits += other.Splits
	s.Doubles += other.Doubles
	s.Folds += other.Folds
	s.InsuranceBets += other.InsuranceBets
	s.InsuranceWins += other.InsuranceWins
	s.DealerBlackjacks += other.DealerBlackjacks
	s.DealerBusts += other.DealerBusts
	s.valueSum += other.valueSum
}

// WinRate returns the fraction of hands that won
func (s *Statistics) WinRate() float64 {
	return s.rate(func(r game.Result) bool { return r.Won() })
}

// LossRate returns the fraction of hands that lost, busts included
func (s *Statistics) LossRate() float64 {
	return s.rate(func(r game.Result) bool { return r.Lost() })
}

// PushRate returns the fraction of hands that tied
func (s *Statistics) PushRate() float64 {
	return s.rate(func(r game.Result) bool { return r.Pushed() })
}

// BustRate returns the fraction of hands that busted
func (s *Statistics) BustRate() float64 {
	return s.rate(func(r game.Result) bool { return r == game.Bust })
}

// MeanValue returns the mean resolved hand value
func (s *Statistics) MeanValue() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.valueSum) / float64(s.Hands)
}

func (s *Statistics) rate(match func(game.Result) bool) float64 {
	if s.Hands == 0 {
		return 0
	}
	n := 0
	for r, count := range s.Results {
		if match(r) {
			n += count
		}
	}
	return float64(n) / float64(s.Hands)
}

// Summary renders a multi-line report of the accumulated results
func (s *Statistics) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Simulation Results ===\n")
	fmt.Fprintf(&b, "Rounds:            %d\n", s.Rounds)
	fmt.Fprintf(&b, "Hands resolved:    %d\n", s.Hands)
	fmt.Fprintf(&b, "Win rate:          %.2f%%\n", s.WinRate()*100)
	fmt.Fprintf(&b, "Push rate:         %.2f%%\n", s.PushRate()*100)
	fmt.Fprintf(&b, "Loss rate:         %.2f%%\n", s.LossRate()*100)
	fmt.Fprintf(&b, "Bust rate:         %.2f%%\n", s.BustRate()*100)
	fmt.Fprintf(&b, "Mean hand value:   %.2f\n", s.MeanValue())
	fmt.Fprintf(&b, "Splits:            %d\n", s.Splits)
	fmt.Fprintf(&b, "Doubles:           %d\n", s.Doubles)
	fmt.Fprintf(&b, "Folds:             %d\n", s.Folds)
	fmt.Fprintf(&b, "Insurance bets:    %d (%d correct)\n", s.InsuranceBets, s.InsuranceWins)
	fmt.Fprintf(&b, "Dealer blackjacks: %d\n", s.DealerBlackjacks)
	fmt.Fprintf(&b, "Dealer busts:      %d\n", s.DealerBusts)

	if len(s.Results) > 0 {
		fmt.Fprintf(&b, "\nOutcomes:\n")
		results := make([]game.Result, 0, len(s.Results))
		for r := range s.Results {
			results = append(results, r)
		}
		sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })
		for _, r := range results {
			fmt.Fprintf(&b, "  %-28s %d\n", r.String(), s.Results[r])
		}
	}

	return b.String()
}
