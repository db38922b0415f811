package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/betlog"
	"github.com/google/subcommands"
)

// statusCmd sets the status of bets. The same command serves 'won', 'lost'
// and 'pending'.
type statusCmd struct {
	status betlog.Status
}

func (c *statusCmd) Name() string { return string(c.status) }
func (c *statusCmd) Synopsis() string {
	if c.status == betlog.Pending {
		return "mark bets as pending again, reversing their effect on the balance"
	}
	return fmt.Sprintf("mark bets as %s and update the balance", c.status)
}
func (c *statusCmd) Usage() string {
	return fmt.Sprintf(`bets %s <id>...

  Sets the status of the bets to %s and reconciles the balance.

  Setting the current status again does nothing. Changing an already resolved
  bet depends on the 'transitions' configuration: 'reverse' (the default)
  reverses the previous effect first, 'strict' refuses the change.
`, c.status, c.status)
}

func (c *statusCmd) SetFlags(f *flag.FlagSet) {}

func (c *statusCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	status := subcommands.ExitSuccess
	for _, id := range f.Args() {
		before := s.book.Balance()
		b, err := s.book.SetStatus(id, c.status)
		switch {
		case errors.Is(err, betlog.ErrTransition):
			fmt.Fprintf(stderr, "Error: %v (transitions are strict)\n", err)
			status = subcommands.ExitFailure
			continue
		case err != nil:
			fmt.Fprintf(stderr, "Error: %v\n", err)
			status = subcommands.ExitFailure
			continue
		}
		delta := s.book.Balance().Sub(before)
		fmt.Fprintf(stdout, "%s %q is %s (%s), balance %s\n", b.ID, b.Description, b.Status, s.money(delta).SignedString(), s.money(s.book.Balance()))
	}
	if saved := s.saved(); saved != subcommands.ExitSuccess {
		return saved
	}
	return status
}
