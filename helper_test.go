package betlog

import (
	"testing"

	"github.com/etnz/betlog/date"
	"github.com/shopspring/decimal"
)

// d is a test helper to create decimals from literals.
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// simple is a test helper returning a simple bet dated 2025-03-01.
func simple(amount, odds string) Bet {
	return NewSimple(date.New(2025, 3, 1), "test bet", d(amount), d(odds))
}

// record records b in l and fails the test on error.
func record(t *testing.T, l *Ledger, b Bet) Bet {
	t.Helper()
	got, err := l.Record(b)
	if err != nil {
		t.Fatalf("Record(%+v) returned an unexpected error: %v", b, err)
	}
	return got
}

// settle sets the status of id and fails the test on error.
func settle(t *testing.T, l *Ledger, id string, s Status) {
	t.Helper()
	if _, err := l.SetStatus(id, s); err != nil {
		t.Fatalf("SetStatus(%q, %s) returned an unexpected error: %v", id, s, err)
	}
}

// assertBalance checks the ledger balance.
func assertBalance(t *testing.T, l *Ledger, want string) {
	t.Helper()
	if !l.Balance().Equal(d(want)) {
		t.Errorf("Balance() = %s, want %s", l.Balance(), want)
	}
}

// assertReconciled checks that the balance is explained by the bets.
func assertReconciled(t *testing.T, l *Ledger) {
	t.Helper()
	want := l.Initial().Add(ComputeStats(l.Bets()).Profit)
	if !l.Balance().Equal(want) {
		t.Errorf("Balance() = %s, want initial %s + profit = %s", l.Balance(), l.Initial(), want)
	}
}

// decimalInt is a test helper converting an int to a decimal.
func decimalInt(i int) decimal.Decimal { return decimal.NewFromInt(int64(i)) }
