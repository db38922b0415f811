package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/betlog"
	"github.com/etnz/betlog/date"
	"github.com/etnz/betlog/renderer"
	"github.com/google/subcommands"
)

type addCmd struct {
	id     string
	date   string
	amount string
	odds   string
	events eventsFlag
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new pending bet" }
func (*addCmd) Usage() string {
	return `bets add -a <stake> -o <odds> [-d <date>] [-id <id>] <description>
bets add -a <stake> -e <leg@odds> -e <leg@odds>... [-d <date>] [-id <id>] <description>

  Records a new bet in the pending status. The balance does not change until
  the bet is resolved with 'bets won' or 'bets lost'.

  With two or more -e flags the bet is a combined bet: its odds are the
  product of the legs' odds.

Usage Examples:
$ bets add -a 10 -o 2.5 Real Madrid - Betis
$ bets add -a 2 -e "Lyon@1.5" -e "Lens@2.1" weekend
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Bet id. A random one is generated by default.")
	f.StringVar(&c.date, "d", "", "Bet date. Defaults to today.")
	f.StringVar(&c.amount, "a", "", "Stake.")
	f.StringVar(&c.odds, "o", "", "Odds of a simple bet.")
	f.Var(&c.events, "e", "Leg of a combined bet, as description@odds. Can be repeated.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	description := strings.Join(f.Args(), " ")
	if c.amount == "" {
		fmt.Fprintln(stderr, "Error: -a is required.")
		return subcommands.ExitUsageError
	}
	if (c.odds == "") == (len(c.events) == 0) {
		fmt.Fprintln(stderr, "Error: exactly one of -o or -e is required.")
		return subcommands.ExitUsageError
	}

	amount, err := parseDecimal("stake", c.amount)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	var on date.Date
	if c.date != "" {
		if on, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	var bet betlog.Bet
	if len(c.events) > 0 {
		bet = betlog.NewCombined(on, description, amount, c.events...)
	} else {
		odds, err := parseDecimal("odds", c.odds)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		bet = betlog.NewSimple(on, description, amount, odds)
	}
	bet.ID = c.id

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	bet, err = s.book.Record(bet)
	if err != nil {
		fmt.Fprintf(stderr, "Error: could not record the bet: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := s.saved(); status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.RenderBet(bet, s.cfg.Currency))
	return subcommands.ExitSuccess
}
