package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/etnz/betlog/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	rangeFlags
	status string
	head   int
	tail   int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the bets" }
func (*listCmd) Usage() string {
	return `bets list [-p <period> | -s <start_date>] [-d <end_date>] [-status <status,...>] [-head <n>] [-tail <n>]

  Lists the bets in the order they were recorded, with options for filtering
  and limiting the output.

Usage Examples:
# pending bets of the current month
$ bets list -p month -status pending
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	c.rangeFlags.SetFlags(f)
	f.StringVar(&c.status, "status", "", "Comma separated statuses to show (pending, won, lost).")
	f.IntVar(&c.head, "head", 0, "Show only the first N bets.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N bets.")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	filters, err := c.filters(c.status)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	r := renderer.NewReport("Bets", s.cfg.Currency, s.book.Ledger, filters...)
	if c.head > 0 && len(r.Bets) > c.head {
		r.Bets = r.Bets[:c.head]
	}
	if c.tail > 0 && len(r.Bets) > c.tail {
		r.Bets = slices.Clone(r.Bets[len(r.Bets)-c.tail:])
	}
	printMarkdown(renderer.RenderBets(r))
	return subcommands.ExitSuccess
}
