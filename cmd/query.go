package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/betlog"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query the bets with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `bets query <jsonpath>

  Evaluates a JSONPath expression over the array of bets, in their JSON form,
  and prints the result as JSON.

Usage Examples:
# descriptions of the won bets
$ bets query '$[?(@.status=="won")].description'
# ids of all the bets
$ bets query '$[*].id'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: exactly one JSONPath expression is required.")
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	result, err := query(f.Arg(0), s.book.Ledger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, result)
	return subcommands.ExitSuccess
}

// query evaluates path over the bets of l and returns the indented JSON
// result.
func query(path string, l *betlog.Ledger) (string, error) {
	bets := make([]betlog.Bet, 0, l.Len())
	for b := range l.Bets() {
		bets = append(bets, b)
	}
	data, err := json.Marshal(bets)
	if err != nil {
		return "", fmt.Errorf("could not encode bets: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return "", fmt.Errorf("could not decode bets: %w", err)
	}

	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error evaluating %q: %w", path, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jval); err != nil {
		return "", fmt.Errorf("could not encode the result: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
