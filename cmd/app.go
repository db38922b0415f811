// Package cmd implements the CLI application to track bets.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/betlog"
	"github.com/etnz/betlog/config"
	"github.com/etnz/betlog/logger"
	"github.com/etnz/betlog/store"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Commands returns all the bets commands, by group.
func Commands() map[string][]subcommands.Command {
	return map[string][]subcommands.Command{
		"bets": {
			&addCmd{},
			&statusCmd{status: betlog.Won},
			&statusCmd{status: betlog.Lost},
			&statusCmd{status: betlog.Pending},
			&editCmd{},
			&rmCmd{},
		},
		"reports": {
			&listCmd{},
			&showCmd{},
			&statsCmd{},
			&balanceCmd{},
			&queryCmd{},
			&exportCmd{},
		},
		"maintenance": {
			&initCmd{},
			&fmtCmd{},
			&topicCmd{},
		},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands() {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "betlog.yaml", "Path to the configuration file (YAML). Defaults apply when it does not exist.")
var raw = flag.Bool("raw", false, "Print markdown without rendering it for the terminal.")

// output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// session holds what a command needs to work on the configured ledger.
type session struct {
	cfg   config.Config
	store store.Store
	book  *betlog.Book
}

// openSession loads the configuration, initialises the logger, and opens the
// configured store as a Book.
func openSession() (*session, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log)

	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	s, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("could not open the %s store %q: %w", cfg.Store.Backend, cfg.Store.Path, err)
	}
	log.WithFields(log.Fields{"backend": cfg.Store.Backend, "path": cfg.Store.Path}).Debug("store opened")

	book := betlog.OpenBook(s, cfg.InitialBalance.Decimal, betlog.WithPolicy(policy))
	return &session{cfg: cfg, store: s, book: book}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		log.WithError(err).Error("could not close the store")
	}
}

// saved reports a save failure of the last mutation, if any.
func (s *session) saved() subcommands.ExitStatus {
	if err := s.book.Err(); err != nil {
		fmt.Fprintf(stderr, "Error: the change could not be saved: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// money formats v in the configured currency.
func (s *session) money(v decimal.Decimal) betlog.Money { return betlog.M(v, s.cfg.Currency) }

// printMarkdown renders md for the terminal, unless -raw is set.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		log.WithError(err).Warn("could not create the markdown renderer")
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.WithError(err).Warn("could not render markdown")
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// parseDecimal parses a flag value, name is used in the error message.
func parseDecimal(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return d, nil
}
