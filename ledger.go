package betlog

import (
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/betlog/date"
	"github.com/shopspring/decimal"
)

// Policy decides how the ledger treats a status change that does not start
// from pending.
type Policy int

const (
	// ReverseFirst reverses the effect of the current status before applying
	// the new one, so that won->lost, lost->won and back to pending keep the
	// balance equal to the initial balance plus the profit of the bets.
	ReverseFirst Policy = iota
	// PendingOnly only accepts pending->won and pending->lost. Any other
	// change fails with a *TransitionError.
	PendingOnly
)

func (p Policy) String() string {
	switch p {
	case ReverseFirst:
		return "reverse"
	case PendingOnly:
		return "strict"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a policy name, "reverse" or "strict".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "reverse", "":
		return ReverseFirst, nil
	case "strict":
		return PendingOnly, nil
	default:
		return 0, fmt.Errorf("unknown transition policy: %q", s)
	}
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithPolicy sets the status transition policy.
func WithPolicy(p Policy) Option { return func(l *Ledger) { l.policy = p } }

// WithOnMutation registers f to be called after each mutation.
func WithOnMutation(f func(*Ledger)) Option { return func(l *Ledger) { l.OnMutation(f) } }

// Ledger holds a balance and the bets that explain it.
//
// Bets are kept in insertion order and are unique by id. The balance always
// equals the initial balance plus the effect of every resolved bet, see
// Bet.Effect.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	initial decimal.Decimal
	balance decimal.Decimal
	bets    []Bet
	index   map[string]int // index bets position by id
	policy  Policy
	hooks   []func(*Ledger)
}

// NewLedger creates an empty ledger starting with the given balance.
func NewLedger(initial decimal.Decimal, opts ...Option) *Ledger {
	l := &Ledger{
		initial: initial,
		balance: initial,
		bets:    make([]Bet, 0),
		index:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Restore rebuilds a ledger from a persisted state. Missing derived fields of
// the stored bets are filled in, then the initial balance is derived from the
// stored balance and the effect of the bets.
func Restore(s State, opts ...Option) (*Ledger, error) {
	l := NewLedger(decimal.Zero, opts...)
	for _, b := range s.Bets {
		b = b.normalized()
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("invalid bet %q: %w", b.ID, err)
		}
		if _, exists := l.index[b.ID]; exists {
			return nil, fmt.Errorf("duplicate bet id %q", b.ID)
		}
		l.index[b.ID] = len(l.bets)
		l.bets = append(l.bets, b)
	}
	l.balance = s.Balance
	l.initial = s.Balance.Sub(l.Stats().Profit)
	return l, nil
}

// OnMutation registers f to be called after each successful mutation: a
// recorded bet, an effective status change, a deleted bet or an update.
func (l *Ledger) OnMutation(f func(*Ledger)) { l.hooks = append(l.hooks, f) }

func (l *Ledger) notify() {
	for _, f := range l.hooks {
		f(l)
	}
}

// Policy returns the transition policy in use.
func (l *Ledger) Policy() Policy { return l.policy }

// Balance returns the current balance.
func (l *Ledger) Balance() decimal.Decimal { return l.balance }

// Initial returns the balance the ledger would have without any resolved bet.
func (l *Ledger) Initial() decimal.Decimal { return l.initial }

// Len returns the number of bets.
func (l *Ledger) Len() int { return len(l.bets) }

// Bet returns the bet with this id.
func (l *Ledger) Bet(id string) (Bet, bool) {
	i, ok := l.index[id]
	if !ok {
		return Bet{}, false
	}
	return l.bets[i].clone(), true
}

// Bets returns an iterator over the bets, in insertion order, accepted by
// all the filters.
func (l *Ledger) Bets(filters ...func(Bet) bool) iter.Seq[Bet] {
	return func(yield func(Bet) bool) {
	next:
		for _, b := range l.bets {
			for _, accept := range filters {
				if !accept(b) {
					continue next
				}
			}
			if !yield(b.clone()) {
				return
			}
		}
	}
}

// Stats computes the statistics of all the bets.
func (l *Ledger) Stats() Stats { return ComputeStats(l.Bets()) }

// State returns a snapshot of the ledger for persistence.
func (l *Ledger) State() State {
	return State{Balance: l.balance, Bets: slices.Collect(l.Bets())}
}

// Record appends a new bet in the pending status. Missing id, date and
// possible win are filled in. The balance is unchanged.
func (l *Ledger) Record(bet Bet) (Bet, error) {
	b := bet.normalized()
	b.Status = Pending
	if err := b.Validate(); err != nil {
		return Bet{}, err
	}
	if _, exists := l.index[b.ID]; exists {
		return Bet{}, &ValidationError{Field: "id", Reason: fmt.Sprintf("bet %q already exists", b.ID)}
	}
	l.index[b.ID] = len(l.bets)
	l.bets = append(l.bets, b)
	l.notify()
	return b.clone(), nil
}

// SetStatus changes the status of a bet and reconciles the balance.
//
// Setting the current status again is a no-op. From pending, won adds
// PossibleWin - Amount and lost subtracts Amount. Other changes depend on the
// ledger Policy.
func (l *Ledger) SetStatus(id string, s Status) (Bet, error) {
	if _, err := ParseStatus(string(s)); err != nil {
		return Bet{}, &ValidationError{Field: "status", Reason: err.Error()}
	}
	i, ok := l.index[id]
	if !ok {
		return Bet{}, &NotFoundError{ID: id}
	}
	old := l.bets[i]
	if old.Status == s {
		return old.clone(), nil
	}
	if l.policy == PendingOnly && old.Status != Pending {
		return old.clone(), &TransitionError{ID: id, From: old.Status, To: s}
	}

	updated := old
	updated.Status = s
	l.balance = l.balance.Sub(old.Effect()).Add(updated.Effect())
	l.bets[i] = updated
	l.notify()
	return updated.clone(), nil
}

// Delete removes a bet and reverses its effect on the balance. Deleting an
// unknown id is a no-op and returns false.
func (l *Ledger) Delete(id string) (Bet, bool) {
	i, ok := l.index[id]
	if !ok {
		return Bet{}, false
	}
	b := l.bets[i]
	l.balance = l.balance.Sub(b.Effect())
	l.bets = slices.Delete(l.bets, i, i+1)
	delete(l.index, id)
	for j := i; j < len(l.bets); j++ {
		l.index[l.bets[j].ID] = j
	}
	l.notify()
	return b, true
}

// Update replaces the description, stake, odds, kind and events of an
// existing bet. Its id and status are kept, and so is its date unless a new
// one is given. If the bet is resolved, the balance moves by the difference
// between the new and the old effect.
func (l *Ledger) Update(bet Bet) (Bet, error) {
	i, ok := l.index[bet.ID]
	if !ok {
		return Bet{}, &NotFoundError{ID: bet.ID}
	}
	old := l.bets[i]
	if bet.Date.IsZero() {
		bet.Date = old.Date
	}
	bet.PossibleWin = decimal.Zero
	bet.Status = old.Status
	updated := bet.normalized()
	if err := updated.Validate(); err != nil {
		return Bet{}, err
	}
	l.balance = l.balance.Sub(old.Effect()).Add(updated.Effect())
	l.bets[i] = updated
	l.notify()
	return updated.clone(), nil
}

// ByStatus returns a filter accepting bets with one of the given statuses.
func ByStatus(statuses ...Status) func(Bet) bool {
	return func(b Bet) bool { return slices.Contains(statuses, b.Status) }
}

// InRange returns a filter accepting bets dated within r.
func InRange(r date.Range) func(Bet) bool {
	return func(b Bet) bool { return r.Contains(b.Date) }
}
