package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/betlog/renderer"
	"github.com/google/subcommands"
)

type exportCmd struct {
	rangeFlags
	status string
	format string
	output string
	title  string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a report of the bets as markdown or HTML" }
func (*exportCmd) Usage() string {
	return `bets export [-format md|html] [-o <file>] [-title <title>] [-p <period> | -s <start_date>] [-d <end_date>] [-status <status,...>]

  Writes a report with the statistics and the list of the selected bets.

Usage Examples:
$ bets export -p month -format html -o september.html
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.rangeFlags.SetFlags(f)
	f.StringVar(&c.status, "status", "", "Comma separated statuses to export (pending, won, lost).")
	f.StringVar(&c.format, "format", "md", "Output format: md or html.")
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the standard output.")
	f.StringVar(&c.title, "title", "", "Report title. Defaults to the selected period.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.format != "md" && c.format != "html" {
		fmt.Fprintf(stderr, "Error: unknown format %q, want md or html.\n", c.format)
		return subcommands.ExitUsageError
	}
	filters, err := c.filters(c.status)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	title := c.title
	if title == "" {
		title = "Bets"
		if inRange, rg, _ := c.filter(); inRange != nil {
			title = "Bets " + rg.Identifier()
		}
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	out := renderer.RenderReport(renderer.NewReport(title, s.cfg.Currency, s.book.Ledger, filters...))
	if c.format == "html" {
		if out, err = renderer.HTML(out); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	if c.output == "" {
		fmt.Fprint(stdout, out)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, []byte(out), 0644); err != nil {
		fmt.Fprintf(stderr, "Error: could not write report %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stderr, "Report written to %s\n", c.output)
	return subcommands.ExitSuccess
}
