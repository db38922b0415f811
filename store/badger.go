package store

import (
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/etnz/betlog"
	"github.com/shopspring/decimal"
)

// Keys of the badger store, one per persisted value.
var (
	balanceKey = []byte("balance")
	betsKey    = []byte("bets")
)

// Badger stores a ledger in a Badger key-value database: the balance as a
// decimal string and the bets as a JSON array.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens, or creates, the database in the directory path.
func OpenBadger(path string) (*Badger, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", path, err)
	}
	return &Badger{db: db}, nil
}

func (s *Badger) Load() (betlog.State, error) {
	var state betlog.State
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(balanceKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return betlog.ErrNoState
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			state.Balance, err = decimal.NewFromString(string(val))
			return err
		}); err != nil {
			return fmt.Errorf("invalid balance: %w", err)
		}

		item, err = txn.Get(betsKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &state.Bets); err != nil {
				return fmt.Errorf("invalid bets: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return betlog.State{}, err
	}
	return state, nil
}

func (s *Badger) Save(state betlog.State) error {
	bets := state.Bets
	if bets == nil {
		bets = []betlog.Bet{}
	}
	data, err := json.Marshal(bets)
	if err != nil {
		return fmt.Errorf("could not encode bets: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(betsKey, data); err != nil {
			return err
		}
		return txn.Set(balanceKey, []byte(state.Balance.String()))
	})
}

func (s *Badger) Close() error { return s.db.Close() }
