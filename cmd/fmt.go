package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/betlog"
	"github.com/etnz/betlog/config"
	"github.com/etnz/betlog/logger"
	"github.com/etnz/betlog/store"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the store into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `bets fmt

  Validates the stored ledger and writes it back in a canonical form: missing
  possible wins and combined odds are computed and, for the file store, the
  JSONL is rewritten with ordered keys.

  Unlike the other commands, fmt fails on unreadable or inconsistent data
  instead of starting from an empty ledger.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	logger.Init(cfg.Log)

	s, err := store.Open(cfg.Store)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	state, err := s.Load()
	if errors.Is(err, betlog.ErrNoState) {
		fmt.Fprintln(stderr, "Warning: no ledger found to format.")
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: could not load the ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	l, err := betlog.Restore(state)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.Save(l.State()); err != nil {
		fmt.Fprintf(stderr, "Error saving formatted ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stderr, "✅ Successfully formatted %d bets.\n", l.Len())
	return subcommands.ExitSuccess
}
