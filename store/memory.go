package store

import (
	"slices"

	"github.com/etnz/betlog"
)

// Memory implements Store in memory. Used for testing.
type Memory struct {
	state *betlog.State
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load() (betlog.State, error) {
	if m.state == nil {
		return betlog.State{}, betlog.ErrNoState
	}
	return copyState(*m.state), nil
}

func (m *Memory) Save(s betlog.State) error {
	c := copyState(s)
	m.state = &c
	return nil
}

func (m *Memory) Close() error { return nil }

// copyState copies s so that no slice is shared with the caller.
func copyState(s betlog.State) betlog.State {
	bets := slices.Clone(s.Bets)
	for i := range bets {
		bets[i].Events = slices.Clone(bets[i].Events)
	}
	return betlog.State{Balance: s.Balance, Bets: bets}
}
