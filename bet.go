package betlog

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/etnz/betlog/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is one leg of a combined bet.
type Event struct {
	Description string          `json:"description"`
	Odds        decimal.Decimal `json:"odds"`
}

// Bet is a recorded wager.
//
// PossibleWin is the payout if the bet is won, stake included. The effect of
// a won bet on the balance is therefore PossibleWin - Amount.
type Bet struct {
	ID          string
	Date        date.Date
	Description string
	Amount      decimal.Decimal // stake
	Odds        decimal.Decimal
	Status      Status
	Kind        Kind
	PossibleWin decimal.Decimal
	Events      []Event // legs, only for combined bets
}

// NewSimple returns a pending simple bet with its possible win computed.
func NewSimple(on date.Date, description string, amount, odds decimal.Decimal) Bet {
	return Bet{
		Date:        on,
		Description: description,
		Amount:      amount,
		Odds:        odds,
		Status:      Pending,
		Kind:        Simple,
		PossibleWin: amount.Mul(odds),
	}
}

// NewCombined returns a pending combined bet. Its odds are the product of the
// legs' odds.
func NewCombined(on date.Date, description string, amount decimal.Decimal, events ...Event) Bet {
	odds := CombinedOdds(events)
	return Bet{
		Date:        on,
		Description: description,
		Amount:      amount,
		Odds:        odds,
		Status:      Pending,
		Kind:        Combined,
		PossibleWin: amount.Mul(odds),
		Events:      events,
	}
}

// CombinedOdds returns the product of the events odds, or zero without events.
func CombinedOdds(events []Event) decimal.Decimal {
	if len(events) == 0 {
		return decimal.Zero
	}
	odds := decimal.NewFromInt(1)
	for _, e := range events {
		odds = odds.Mul(e.Odds)
	}
	return odds
}

// Effect returns the amount this bet currently adds to the balance.
func (b Bet) Effect() decimal.Decimal { return b.effect(b.Status) }

// effect returns the balance effect the bet would have with status s.
func (b Bet) effect(s Status) decimal.Decimal {
	switch s {
	case Won:
		return b.PossibleWin.Sub(b.Amount)
	case Lost:
		return b.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// Validate checks the stake, the odds and the legs of a bet.
func (b Bet) Validate() error {
	one := decimal.NewFromInt(1)
	if !b.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: fmt.Sprintf("stake must be positive, got %s", b.Amount)}
	}
	if b.Odds.LessThan(one) {
		return &ValidationError{Field: "odds", Reason: fmt.Sprintf("odds must be at least 1, got %s", b.Odds)}
	}
	if b.PossibleWin.IsNegative() {
		return &ValidationError{Field: "possibleWin", Reason: fmt.Sprintf("cannot be negative, got %s", b.PossibleWin)}
	}
	switch b.Kind {
	case Simple:
		if len(b.Events) > 0 {
			return &ValidationError{Field: "events", Reason: "a simple bet has no events"}
		}
	case Combined:
		if len(b.Events) < 2 {
			return &ValidationError{Field: "events", Reason: fmt.Sprintf("a combined bet needs at least 2 events, got %d", len(b.Events))}
		}
		for i, e := range b.Events {
			if e.Odds.LessThan(one) {
				return &ValidationError{Field: "events", Reason: fmt.Sprintf("event #%d odds must be at least 1, got %s", i+1, e.Odds)}
			}
		}
	default:
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown bet type %q", b.Kind)}
	}
	return nil
}

// normalized returns a copy of b with its derived fields filled in: a fresh
// id, today's date, the simple kind and the possible win when they are
// missing. The odds of a combined bet are always the product of its legs.
func (b Bet) normalized() Bet {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Date.IsZero() {
		b.Date = date.Today()
	}
	if b.Kind == "" {
		b.Kind = Simple
	}
	if b.Kind == Combined {
		b.Odds = CombinedOdds(b.Events)
	}
	if b.PossibleWin.IsZero() {
		b.PossibleWin = b.Amount.Mul(b.Odds)
	}
	if len(b.Events) == 0 {
		b.Events = nil
	}
	return b.clone()
}

// clone returns a copy of b that shares no legs with it.
func (b Bet) clone() Bet {
	b.Events = slices.Clone(b.Events)
	return b
}

func (b Bet) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", b.ID)
	w.Append("date", b.Date)
	w.Append("description", b.Description)
	w.Append("amount", b.Amount)
	w.Append("odds", b.Odds)
	w.Append("status", b.Status)
	w.Append("type", b.Kind)
	w.Append("possibleWin", b.PossibleWin)
	w.Optional("events", b.Events)
	return w.MarshalJSON()
}

func (b *Bet) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID          string          `json:"id"`
		Date        date.Date       `json:"date"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Odds        decimal.Decimal `json:"odds"`
		Status      Status          `json:"status"`
		Kind        Kind            `json:"type"`
		PossibleWin decimal.Decimal `json:"possibleWin"`
		Events      []Event         `json:"events,omitempty"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp.ID == "" {
		return fmt.Errorf("bet has no id")
	}
	*b = Bet{
		ID:          temp.ID,
		Date:        temp.Date,
		Description: temp.Description,
		Amount:      temp.Amount,
		Odds:        temp.Odds,
		Status:      temp.Status,
		Kind:        temp.Kind,
		PossibleWin: temp.PossibleWin,
		Events:      temp.Events,
	}
	if b.Status == "" {
		b.Status = Pending
	}
	if b.Kind == "" {
		b.Kind = Simple
	}
	return nil
}
