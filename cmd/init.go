package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/betlog/config"
	"github.com/google/subcommands"
)

type initCmd struct {
	currency    string
	balance     string
	backend     string
	path        string
	transitions string
	force       bool
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "write a configuration file" }
func (*initCmd) Usage() string {
	return `bets init [-currency <code>] [-balance <amount>] [-store <backend>] [-path <path>] [-transitions reverse|strict] [-f]

  Writes the configuration file selected by -config with the defaults and the
  given values. An existing file is only replaced with -f.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	def := config.Default()
	f.StringVar(&c.currency, "currency", def.Currency, "Currency of the ledger.")
	f.StringVar(&c.balance, "balance", def.InitialBalance.String(), "Initial balance.")
	f.StringVar(&c.backend, "store", def.Store.Backend, "Store backend: file, sqlite, badger or memory.")
	f.StringVar(&c.path, "path", "", "Store path. Defaults depend on the backend.")
	f.StringVar(&c.transitions, "transitions", def.Transitions, "Status transitions: reverse or strict.")
	f.BoolVar(&c.force, "f", false, "Overwrite an existing configuration file.")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(*configFile); !c.force && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Error: %q already exists, use -f to overwrite it.\n", *configFile)
		return subcommands.ExitFailure
	}

	cfg := config.Default()
	cfg.Currency = c.currency
	cfg.Transitions = c.transitions
	cfg.Store.Backend = c.backend
	cfg.Store.Path = c.path
	balance, err := parseDecimal("balance", c.balance)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg.InitialBalance = config.Amount{Decimal: balance}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if err := cfg.Save(*configFile); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stderr, "Configuration written to %s\n", *configFile)
	return subcommands.ExitSuccess
}
