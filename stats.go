package betlog

import (
	"iter"

	"github.com/shopspring/decimal"
)

// Stats summarizes a collection of bets.
type Stats struct {
	Total   int
	Won     int
	Lost    int
	Pending int
	Staked  decimal.Decimal // sum of all stakes, pending included
	Profit  decimal.Decimal // won bets net gains minus lost stakes
}

// ComputeStats computes the statistics of bets. It only depends on the bets,
// never on a stored balance, so it can be used to cross-check one.
func ComputeStats(bets iter.Seq[Bet]) Stats {
	var s Stats
	for b := range bets {
		s.Total++
		s.Staked = s.Staked.Add(b.Amount)
		switch b.Status {
		case Won:
			s.Won++
		case Lost:
			s.Lost++
		default:
			s.Pending++
		}
		s.Profit = s.Profit.Add(b.Effect())
	}
	return s
}

// Resolved returns the number of won or lost bets.
func (s Stats) Resolved() int { return s.Won + s.Lost }

// WinRate returns the ratio of won bets among resolved ones, zero if none is
// resolved.
func (s Stats) WinRate() decimal.Decimal {
	if s.Resolved() == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.Won)).Div(decimal.NewFromInt(int64(s.Resolved())))
}
