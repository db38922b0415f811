package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/betlog"
	"github.com/etnz/betlog/date"
	"github.com/etnz/betlog/renderer"
	"github.com/google/subcommands"
)

type editCmd struct {
	description string
	date        string
	amount      string
	odds        string
	events      eventsFlag
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change the details of a bet" }
func (*editCmd) Usage() string {
	return `bets edit [-desc <description>] [-d <date>] [-a <stake>] [-o <odds> | -e <leg@odds>...] <id>

  Changes the description, date, stake or odds of a bet. Its status is kept:
  if the bet is resolved, the balance moves by the difference between its new
  and its previous effect.

  -o turns the bet into a simple bet, -e replaces the legs and turns it into
  a combined bet.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.description, "desc", "", "New description.")
	f.StringVar(&c.date, "d", "", "New date.")
	f.StringVar(&c.amount, "a", "", "New stake.")
	f.StringVar(&c.odds, "o", "", "New odds, the bet becomes a simple bet.")
	f.Var(&c.events, "e", "New leg as description@odds, the bet becomes a combined bet. Can be repeated.")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: exactly one bet id is required.")
		return subcommands.ExitUsageError
	}
	if c.odds != "" && len(c.events) > 0 {
		fmt.Fprintln(stderr, "Error: -o and -e cannot be used together.")
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	id := f.Arg(0)
	bet, ok := s.book.Bet(id)
	if !ok {
		fmt.Fprintf(stderr, "Error: %v\n", &betlog.NotFoundError{ID: id})
		return subcommands.ExitFailure
	}
	if err := c.apply(&bet); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	before := s.book.Balance()
	bet, err = s.book.Update(bet)
	if err != nil {
		fmt.Fprintf(stderr, "Error: could not update bet %q: %v\n", id, err)
		return subcommands.ExitFailure
	}
	if status := s.saved(); status != subcommands.ExitSuccess {
		return status
	}
	if delta := s.book.Balance().Sub(before); !delta.IsZero() {
		fmt.Fprintf(stdout, "balance %s (%s)\n", s.money(s.book.Balance()), s.money(delta).SignedString())
	}
	printMarkdown(renderer.RenderBet(bet, s.cfg.Currency))
	return subcommands.ExitSuccess
}

// apply sets the flags values on b.
func (c *editCmd) apply(b *betlog.Bet) error {
	if c.description != "" {
		b.Description = c.description
	}
	if c.date != "" {
		on, err := date.Parse(c.date)
		if err != nil {
			return err
		}
		b.Date = on
	}
	if c.amount != "" {
		amount, err := parseDecimal("stake", c.amount)
		if err != nil {
			return err
		}
		b.Amount = amount
	}
	switch {
	case c.odds != "":
		odds, err := parseDecimal("odds", c.odds)
		if err != nil {
			return err
		}
		b.Kind, b.Odds, b.Events = betlog.Simple, odds, nil
	case len(c.events) > 0:
		b.Kind, b.Events = betlog.Combined, c.events
	}
	return nil
}
