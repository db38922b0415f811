package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete bets and reverse their effect on the balance" }
func (*rmCmd) Usage() string {
	return `bets rm <id>...

  Deletes the bets. If a bet was resolved, its effect on the balance is
  reversed. Unknown ids are reported but are not an error.
`
}

func (*rmCmd) SetFlags(f *flag.FlagSet) {}

func (*rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: at least one bet id is required.")
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	for _, id := range f.Args() {
		b, ok := s.book.Delete(id)
		if !ok {
			fmt.Fprintf(stderr, "Warning: bet %q not found\n", id)
			continue
		}
		fmt.Fprintf(stdout, "deleted %s %q, balance %s\n", b.ID, b.Description, s.money(s.book.Balance()))
	}
	return s.saved()
}
