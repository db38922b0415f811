package betlog

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/etnz/betlog/date"
	"github.com/shopspring/decimal"
)

func TestLedger_WonThenDeleted(t *testing.T) {
	l := NewLedger(d("7.96"))

	b := record(t, l, Bet{Description: "Madrid - Betis", Amount: d("10"), Odds: d("2.5"), PossibleWin: d("25")})
	if b.Status != Pending {
		t.Errorf("recorded bet status = %s, want pending", b.Status)
	}
	assertBalance(t, l, "7.96")

	settle(t, l, b.ID, Won)
	assertBalance(t, l, "22.96")

	if _, found := l.Delete(b.ID); !found {
		t.Fatalf("Delete(%q) did not find the bet", b.ID)
	}
	assertBalance(t, l, "7.96")
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestLedger_Lost(t *testing.T) {
	l := NewLedger(d("100"))
	b := record(t, l, Bet{Amount: d("5"), Odds: d("3"), PossibleWin: d("15")})
	settle(t, l, b.ID, Lost)
	assertBalance(t, l, "95")

	s := l.Stats()
	if !s.Profit.Equal(d("-5")) {
		t.Errorf("Stats().Profit = %s, want -5", s.Profit)
	}
	if s.Lost != 1 || s.Won != 0 || s.Total != 1 {
		t.Errorf("Stats() = %+v, want 1 lost bet out of 1", s)
	}
}

func TestLedger_RecordValidation(t *testing.T) {
	testCases := []struct {
		name  string
		bet   Bet
		field string
	}{
		{"zero amount", simple("0", "2"), "amount"},
		{"negative amount", simple("-3", "2"), "amount"},
		{"odds below one", simple("10", "0.9"), "odds"},
		{"combined with one leg", NewCombined(date.New(2025, 3, 1), "", d("5"), Event{"A", d("1.5")}), "events"},
		{"combined with a bad leg", NewCombined(date.New(2025, 3, 1), "", d("5"), Event{"A", d("1.5")}, Event{"B", d("0.5")}), "odds"},
		{"simple with legs", Bet{Kind: Simple, Amount: d("5"), Odds: d("2"), Events: []Event{{"A", d("2")}}}, "events"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger(d("10"))
			_, err := l.Record(tc.bet)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Record() error = %v, want a validation error", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Errorf("Record() error = %v, want field %q", err, tc.field)
			}
			if l.Len() != 0 {
				t.Errorf("Len() = %d after a rejected bet, want 0", l.Len())
			}
		})
	}
}

func TestLedger_RecordFillsDerivedFields(t *testing.T) {
	l := NewLedger(d("0"))
	b := record(t, l, Bet{Description: "no id", Amount: d("4"), Odds: d("1.75"), Status: Won})

	if b.ID == "" {
		t.Error("Record() did not assign an id")
	}
	if b.Date.IsZero() {
		t.Error("Record() did not assign a date")
	}
	if b.Status != Pending {
		t.Errorf("Record() status = %s, want pending whatever the input", b.Status)
	}
	if b.Kind != Simple {
		t.Errorf("Record() kind = %s, want simple", b.Kind)
	}
	if !b.PossibleWin.Equal(d("7")) {
		t.Errorf("Record() possible win = %s, want 7", b.PossibleWin)
	}
	assertBalance(t, l, "0")
}

func TestLedger_RecordDuplicateID(t *testing.T) {
	l := NewLedger(d("0"))
	b := simple("1", "2")
	b.ID = "42"
	record(t, l, b)
	if _, err := l.Record(b); !errors.Is(err, ErrValidation) {
		t.Errorf("Record() of a duplicate id error = %v, want a validation error", err)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestLedger_CombinedBet(t *testing.T) {
	l := NewLedger(d("50"))
	b := record(t, l, NewCombined(date.New(2025, 3, 1), "weekend", d("2"),
		Event{Description: "Lyon", Odds: d("1.5")},
		Event{Description: "Nantes", Odds: d("2")},
		Event{Description: "Lens", Odds: d("3")},
	))
	if !b.Odds.Equal(d("9")) {
		t.Errorf("combined odds = %s, want 9", b.Odds)
	}
	if !b.PossibleWin.Equal(d("18")) {
		t.Errorf("combined possible win = %s, want 18", b.PossibleWin)
	}
	settle(t, l, b.ID, Won)
	assertBalance(t, l, "66")
}

func TestLedger_CombinedOddsFollowLegs(t *testing.T) {
	l := NewLedger(d("10"))
	bet := NewCombined(date.New(2025, 3, 1), "weekend", d("2"),
		Event{Description: "Lyon", Odds: d("1.5")},
		Event{Description: "Lens", Odds: d("2")},
	)
	bet.Odds, bet.PossibleWin = d("40"), decimal.Zero
	b := record(t, l, bet)
	if !b.Odds.Equal(d("3")) {
		t.Errorf("Record() combined odds = %s, want 3", b.Odds)
	}
	if !b.PossibleWin.Equal(d("6")) {
		t.Errorf("Record() combined possible win = %s, want 6", b.PossibleWin)
	}
}

// TestLedger_ReturnedBetsAreCopies edits the legs of every returned bet and
// checks that the stored bet is unchanged.
func TestLedger_ReturnedBetsAreCopies(t *testing.T) {
	l := NewLedger(d("10"))
	b := record(t, l, NewCombined(date.New(2025, 3, 1), "weekend", d("2"),
		Event{Description: "Lyon", Odds: d("1.5")},
		Event{Description: "Lens", Odds: d("2")},
	))

	returned := []func() (Bet, error){
		func() (Bet, error) { return b, nil },
		func() (Bet, error) { return l.SetStatus(b.ID, Won) },
		func() (Bet, error) { return l.SetStatus(b.ID, Won) }, // same status
		func() (Bet, error) {
			stored, _ := l.Bet(b.ID)
			return l.Update(stored)
		},
		func() (Bet, error) {
			stored, _ := l.Bet(b.ID)
			return stored, nil
		},
	}
	for i, get := range returned {
		got, err := get()
		if err != nil {
			t.Fatalf("#%d unexpected error: %v", i, err)
		}
		got.Events[0].Odds = d("99")
		got.Events[1].Description = "changed"

		stored, _ := l.Bet(b.ID)
		if !stored.Events[0].Odds.Equal(d("1.5")) || stored.Events[1].Description != "Lens" {
			t.Errorf("#%d editing a returned bet changed the stored legs: %+v", i, stored.Events)
		}
	}

	// a refused transition returns a copy too.
	strict := NewLedger(d("10"), WithPolicy(PendingOnly))
	b = record(t, strict, NewCombined(date.New(2025, 3, 1), "", d("2"),
		Event{Description: "A", Odds: d("1.5")},
		Event{Description: "B", Odds: d("2")},
	))
	settle(t, strict, b.ID, Won)
	got, err := strict.SetStatus(b.ID, Lost)
	if !errors.Is(err, ErrTransition) {
		t.Fatalf("SetStatus() error = %v, want ErrTransition", err)
	}
	got.Events[0].Description = "changed"
	if stored, _ := strict.Bet(b.ID); stored.Events[0].Description != "A" {
		t.Errorf("editing a refused bet changed the stored legs: %+v", stored.Events)
	}
}

func TestRestore_InvalidBet(t *testing.T) {
	invalid := simple("5", "2")
	invalid.ID, invalid.Status = "bad", Lost
	invalid.Amount, invalid.Odds = d("-5"), d("0.2")

	_, err := Restore(State{Balance: d("10"), Bets: []Bet{simple("1", "2"), invalid}})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Restore() error = %v, want a validation error", err)
	}
}

func TestLedger_SetStatusUnknownID(t *testing.T) {
	l := NewLedger(d("10"))
	_, err := l.SetStatus("missing", Won)
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "missing" {
		t.Errorf("SetStatus() error = %v, want NotFoundError for %q", err, "missing")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("SetStatus() error = %v, should match ErrNotFound", err)
	}
}

func TestLedger_SetStatusInvalid(t *testing.T) {
	l := NewLedger(d("10"))
	b := record(t, l, simple("1", "2"))
	if _, err := l.SetStatus(b.ID, Status("void")); !errors.Is(err, ErrValidation) {
		t.Errorf("SetStatus(void) error = %v, want a validation error", err)
	}
}

func TestLedger_SameStatusIsNoop(t *testing.T) {
	var mutations int
	l := NewLedger(d("10"), WithOnMutation(func(*Ledger) { mutations++ }))
	b := record(t, l, simple("2", "3"))
	settle(t, l, b.ID, Won)
	settle(t, l, b.ID, Won)
	settle(t, l, b.ID, Won)
	assertBalance(t, l, "14")
	if mutations != 2 {
		t.Errorf("mutation hook called %d times, want 2 (record and first won)", mutations)
	}
}

// TestLedger_ReverseFirst covers transitions that do not start from pending.
// The ledger reverses the previous effect before applying the new one.
func TestLedger_ReverseFirst(t *testing.T) {
	testCases := []struct {
		name  string
		steps []Status
		want  string
	}{
		{"won then lost", []Status{Won, Lost}, "90"},
		{"lost then won", []Status{Lost, Won}, "115"},
		{"won back to pending", []Status{Won, Pending}, "100"},
		{"lost back to pending", []Status{Lost, Pending}, "100"},
		{"flip flop", []Status{Won, Lost, Won, Lost, Won}, "115"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger(d("100"))
			b := record(t, l, simple("10", "2.5"))
			for _, s := range tc.steps {
				settle(t, l, b.ID, s)
				assertReconciled(t, l)
			}
			assertBalance(t, l, tc.want)
		})
	}
}

// TestLedger_PendingOnly covers the strict policy: only pending bets can be
// settled, any other change is refused and leaves the ledger untouched.
func TestLedger_PendingOnly(t *testing.T) {
	testCases := []struct {
		name  string
		first Status
		then  Status
	}{
		{"won then lost", Won, Lost},
		{"lost then won", Lost, Won},
		{"won back to pending", Won, Pending},
		{"lost back to pending", Lost, Pending},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger(d("100"), WithPolicy(PendingOnly))
			b := record(t, l, simple("10", "2.5"))
			settle(t, l, b.ID, tc.first)
			before := l.Balance()

			_, err := l.SetStatus(b.ID, tc.then)
			var terr *TransitionError
			if !errors.As(err, &terr) || terr.From != tc.first || terr.To != tc.then {
				t.Fatalf("SetStatus() error = %v, want TransitionError %s->%s", err, tc.first, tc.then)
			}
			if !l.Balance().Equal(before) {
				t.Errorf("Balance() = %s after a refused transition, want %s", l.Balance(), before)
			}
			if got, _ := l.Bet(b.ID); got.Status != tc.first {
				t.Errorf("status = %s after a refused transition, want %s", got.Status, tc.first)
			}
		})
	}
}

func TestLedger_Delete(t *testing.T) {
	testCases := []struct {
		name   string
		status Status
	}{
		{"pending", Pending},
		{"won", Won},
		{"lost", Lost},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger(d("20"))
			keep := record(t, l, simple("3", "2"))
			settle(t, l, keep.ID, Won)
			before := l.Balance()

			b := record(t, l, simple("4", "1.5"))
			settle(t, l, b.ID, tc.status)
			l.Delete(b.ID)

			if !l.Balance().Equal(before) {
				t.Errorf("Balance() = %s after deleting a %s bet, want %s", l.Balance(), tc.status, before)
			}
			if _, ok := l.Bet(b.ID); ok {
				t.Errorf("deleted bet %q is still in the ledger", b.ID)
			}
			if _, ok := l.Bet(keep.ID); !ok {
				t.Errorf("bet %q was lost by deleting another one", keep.ID)
			}
		})
	}
}

func TestLedger_DeleteUnknownIsNoop(t *testing.T) {
	var mutations int
	l := NewLedger(d("20"), WithOnMutation(func(*Ledger) { mutations++ }))
	record(t, l, simple("3", "2"))
	if _, found := l.Delete("missing"); found {
		t.Error("Delete() of an unknown id reported a deletion")
	}
	if l.Len() != 1 || mutations != 1 {
		t.Errorf("Delete() of an unknown id changed the ledger: len=%d mutations=%d", l.Len(), mutations)
	}
	assertBalance(t, l, "20")
}

func TestLedger_DeleteKeepsOrder(t *testing.T) {
	l := NewLedger(d("0"))
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, record(t, l, simple("1", "2")).ID)
	}
	l.Delete(ids[1])
	l.Delete(ids[3])

	var got []string
	for b := range l.Bets() {
		got = append(got, b.ID)
	}
	want := []string{ids[0], ids[2], ids[4]}
	if !slices.Equal(got, want) {
		t.Errorf("Bets() = %v, want %v", got, want)
	}
	// the index must follow the shifted positions.
	settle(t, l, ids[4], Won)
	if b, _ := l.Bet(ids[4]); b.Status != Won {
		t.Errorf("Bet(%q).Status = %s, want won", ids[4], b.Status)
	}
}

func TestLedger_DeleteRoundTrip(t *testing.T) {
	l := NewLedger(d("7.96"))
	b := record(t, l, simple("10", "2.5"))
	settle(t, l, b.ID, Won)
	before := l.Balance()

	l.Delete(b.ID)
	again := record(t, l, simple("10", "2.5"))
	settle(t, l, again.ID, Won)

	if !l.Balance().Equal(before) {
		t.Errorf("Balance() = %s after delete and re-add, want %s", l.Balance(), before)
	}
}

func TestLedger_RecordThenDelete(t *testing.T) {
	l := NewLedger(d("12.5"))
	record(t, l, simple("1", "3"))
	n := l.Len()

	b := record(t, l, simple("8", "1.2"))
	l.Delete(b.ID)

	assertBalance(t, l, "12.5")
	if l.Len() != n {
		t.Errorf("Len() = %d, want %d", l.Len(), n)
	}
}

func TestLedger_Update(t *testing.T) {
	l := NewLedger(d("100"))
	b := record(t, l, simple("10", "2"))
	settle(t, l, b.ID, Won)
	assertBalance(t, l, "110")

	edit := b
	edit.Amount = d("20")
	edit.Description = "edited"
	got, err := l.Update(edit)
	if err != nil {
		t.Fatalf("Update() returned an unexpected error: %v", err)
	}
	if got.Status != Won || got.ID != b.ID || got.Date != b.Date {
		t.Errorf("Update() = %+v, should keep id, date and status", got)
	}
	if !got.PossibleWin.Equal(d("40")) {
		t.Errorf("Update() possible win = %s, want 40", got.PossibleWin)
	}
	assertBalance(t, l, "120")
	assertReconciled(t, l)

	if _, err := l.Update(Bet{ID: "missing", Amount: d("1"), Odds: d("2")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() of an unknown bet error = %v, want ErrNotFound", err)
	}
	bad := got
	bad.Odds = d("0.5")
	if _, err := l.Update(bad); !errors.Is(err, ErrValidation) {
		t.Errorf("Update() with bad odds error = %v, want a validation error", err)
	}
	assertBalance(t, l, "120")
}

func TestLedger_BetsFilters(t *testing.T) {
	l := NewLedger(d("0"))
	march := record(t, l, simple("1", "2"))
	april := record(t, l, NewSimple(date.New(2025, 4, 10), "april", d("1"), d("2")))
	settle(t, l, april.ID, Lost)

	count := func(filters ...func(Bet) bool) int {
		n := 0
		for range l.Bets(filters...) {
			n++
		}
		return n
	}
	if got := count(); got != 2 {
		t.Errorf("Bets() yields %d bets, want 2", got)
	}
	if got := count(ByStatus(Lost)); got != 1 {
		t.Errorf("Bets(ByStatus(lost)) yields %d bets, want 1", got)
	}
	if got := count(InRange(date.NewRange(march.Date, date.Monthly))); got != 1 {
		t.Errorf("Bets(InRange(march)) yields %d bets, want 1", got)
	}
	if got := count(ByStatus(Lost), InRange(date.NewRange(march.Date, date.Monthly))); got != 0 {
		t.Errorf("Bets(lost in march) yields %d bets, want 0", got)
	}
}

func TestRestore(t *testing.T) {
	won := simple("10", "2.5")
	won.ID, won.Status = "a", Won
	lost := simple("5", "3")
	lost.ID, lost.Status = "b", Lost
	pending := simple("1", "2")
	pending.ID = "c"

	l, err := Restore(State{Balance: d("22.96"), Bets: []Bet{won, lost, pending}})
	if err != nil {
		t.Fatalf("Restore() returned an unexpected error: %v", err)
	}
	if !l.Initial().Equal(d("12.96")) {
		t.Errorf("Initial() = %s, want 12.96", l.Initial())
	}
	assertReconciled(t, l)

	l.Delete("a")
	assertBalance(t, l, "7.96")

	if _, err := Restore(State{Bets: []Bet{won, won}}); err == nil {
		t.Error("Restore() with duplicate ids should fail")
	}
}

// TestLedger_RandomOperations applies random operation sequences and checks
// the balance against the statistics after each step, for both policies.
func TestLedger_RandomOperations(t *testing.T) {
	for _, policy := range []Policy{ReverseFirst, PendingOnly} {
		t.Run(policy.String(), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(7))
			l := NewLedger(d("7.96"), WithPolicy(policy))
			statuses := []Status{Pending, Won, Lost}
			var ids []string

			for step := 0; step < 500; step++ {
				switch op := rnd.Intn(4); {
				case op == 0 || len(ids) == 0:
					amount := d("0.5").Mul(d("1").Add(decimalInt(rnd.Intn(40))))
					odds := d("1").Add(d("0.05").Mul(decimalInt(rnd.Intn(60))))
					ids = append(ids, record(t, l, NewSimple(date.New(2025, 1, 1), "", amount, odds)).ID)
				case op == 1:
					i := rnd.Intn(len(ids))
					l.Delete(ids[i])
					ids = slices.Delete(ids, i, i+1)
				default:
					id := ids[rnd.Intn(len(ids))]
					_, err := l.SetStatus(id, statuses[rnd.Intn(len(statuses))])
					if err != nil && !errors.Is(err, ErrTransition) {
						t.Fatalf("step %d: SetStatus() unexpected error: %v", step, err)
					}
				}
				assertReconciled(t, l)
				if !l.Initial().Equal(d("7.96")) {
					t.Fatalf("step %d: Initial() = %s, want 7.96", step, l.Initial())
				}
			}
		})
	}
}
