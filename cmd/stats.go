package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/betlog/renderer"
	"github.com/google/subcommands"
)

type statsCmd struct {
	rangeFlags
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show statistics of the bets" }
func (*statsCmd) Usage() string {
	return `bets stats [-p <period> | -s <start_date>] [-d <end_date>]

  Shows the number of won, lost and pending bets, the win rate, the total
  stake and the profit. Statistics are computed from the bets alone, the
  balance is the ledger's.
`
}

func (c *statsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filters, err := c.filters("")
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

	printMarkdown(renderer.RenderStats(renderer.NewReport("Statistics", s.cfg.Currency, s.book.Ledger, filters...)))
	return subcommands.ExitSuccess
}
