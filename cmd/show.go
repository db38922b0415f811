package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/betlog"
	"github.com/etnz/betlog/renderer"
	"github.com/google/subcommands"
)

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show the details of a bet" }
func (*showCmd) Usage() string {
	return `bets show <id>

  Shows a bet with its legs and its effect on the balance.
`
}

func (*showCmd) SetFlags(f *flag.FlagSet) {}

func (*showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: exactly one bet id is required.")
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	b, ok := s.book.Bet(f.Arg(0))
	if !ok {
		fmt.Fprintf(stderr, "Error: %v\n", &betlog.NotFoundError{ID: f.Arg(0)})
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderBet(b, s.cfg.Currency))
	return subcommands.ExitSuccess
}
