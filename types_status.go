package betlog

import (
	"encoding/json"
	"fmt"
)

// Status is the resolution status of a bet.
type Status string

const (
	Pending Status = "pending"
	Won     Status = "won"
	Lost    Status = "lost"
)

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case Pending, Won, Lost:
		return st, nil
	default:
		return "", fmt.Errorf("unknown bet status: %q", s)
	}
}

// IsResolved reports whether the status has an effect on the balance.
func (s Status) IsResolved() bool { return s == Won || s == Lost }

func (s *Status) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	st, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Kind distinguishes simple bets from combined ones.
type Kind string

const (
	Simple   Kind = "simple"
	Combined Kind = "combined"
)

// ParseKind parses a bet kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Simple, Combined:
		return k, nil
	default:
		return "", fmt.Errorf("unknown bet type: %q", s)
	}
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	kind, err := ParseKind(str)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
