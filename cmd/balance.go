package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

var (
	gainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	lossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

type balanceCmd struct{}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "print the current balance" }
func (*balanceCmd) Usage() string {
	return `bets balance

  Prints the current balance, coloured against the initial balance.
`
}

func (*balanceCmd) SetFlags(f *flag.FlagSet) {}

func (*balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	balance := s.money(s.book.Balance()).String()
	if !*raw {
		balance = colorize(s.book.Balance().Sub(s.book.Initial()), balance)
	}
	fmt.Fprintln(stdout, balance)
	return subcommands.ExitSuccess
}

// colorize renders text in green for a positive delta, red for a negative one.
func colorize(delta decimal.Decimal, text string) string {
	switch {
	case delta.IsPositive():
		return gainStyle.Render(text)
	case delta.IsNegative():
		return lossStyle.Render(text)
	default:
		return text
	}
}
