package betlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// State is what gets persisted of a ledger: its balance and its bets in
// insertion order.
type State struct {
	Balance decimal.Decimal
	Bets    []Bet
}

// balanceLine is the header line of an encoded state.
type balanceLine struct {
	Balance decimal.Decimal `json:"balance"`
}

// DecodeState decodes a state from a stream of JSONL data: a balance line
// followed by one line per bet. Empty lines are skipped.
func DecodeState(r io.Reader) (State, error) {
	var s State
	var hasBalance bool

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			ID      string          `json:"id"`
			Balance json.RawMessage `json:"balance"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return State{}, fmt.Errorf("could not identify line %q: %w", string(lineBytes), err)
		}

		switch {
		case identifier.Balance != nil:
			if hasBalance {
				return State{}, fmt.Errorf("duplicate balance line %q", string(lineBytes))
			}
			var b balanceLine
			if err := json.Unmarshal(lineBytes, &b); err != nil {
				return State{}, fmt.Errorf("invalid balance line %q: %w", string(lineBytes), err)
			}
			s.Balance = b.Balance
			hasBalance = true
		case identifier.ID != "":
			var bet Bet
			if err := json.Unmarshal(lineBytes, &bet); err != nil {
				return State{}, fmt.Errorf("invalid bet line %q: %w", string(lineBytes), err)
			}
			s.Bets = append(s.Bets, bet)
		default:
			return State{}, fmt.Errorf("unknown line %q", string(lineBytes))
		}
	}
	if err := scanner.Err(); err != nil {
		return State{}, fmt.Errorf("error reading from input: %w", err)
	}
	if !hasBalance {
		return State{}, fmt.Errorf("missing balance line")
	}
	return s, nil
}

// EncodeBet marshals a single bet to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeBet(w io.Writer, b Bet) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal bet %q: %w", b.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write bet %q: %w", b.ID, err)
	}
	return nil
}

// EncodeState writes the balance line, then each bet in order, in JSONL format.
func EncodeState(w io.Writer, s State) error {
	data, err := json.Marshal(balanceLine{Balance: s.Balance})
	if err != nil {
		return fmt.Errorf("failed to marshal balance: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write balance: %w", err)
	}
	for _, b := range s.Bets {
		if err := EncodeBet(w, b); err != nil {
			return err
		}
	}
	return nil
}
