package betlog

import (
	"errors"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ErrNoState is returned by a Storage that has nothing saved yet.
var ErrNoState = errors.New("no saved state")

// Storage is the persistence contract of a Book.
type Storage interface {
	// Load returns the saved state, or ErrNoState.
	Load() (State, error)
	// Save replaces the saved state.
	Save(State) error
}

// Book is a Ledger bound to a Storage: it is loaded once when opened and
// saved after every mutation.
type Book struct {
	*Ledger
	storage Storage
	err     error // last save error
}

// OpenBook loads the ledger from s.
//
// Storage errors never prevent opening a book: when nothing is saved, or when
// the saved data cannot be read, the book starts empty with the initial
// balance.
func OpenBook(s Storage, initial decimal.Decimal, opts ...Option) *Book {
	b := &Book{storage: s}

	state, err := s.Load()
	switch {
	case errors.Is(err, ErrNoState):
		log.Debug("no saved ledger, starting a new one")
		b.Ledger = NewLedger(initial, opts...)
	case err != nil:
		log.WithError(err).Warn("could not load the saved ledger, starting a new one")
		b.Ledger = NewLedger(initial, opts...)
	default:
		l, err := Restore(state, opts...)
		if err != nil {
			log.WithError(err).Warn("saved ledger is inconsistent, starting a new one")
			l = NewLedger(initial, opts...)
		}
		b.Ledger = l
	}
	b.Ledger.OnMutation(func(*Ledger) { b.save() })
	return b
}

func (b *Book) save() {
	if err := b.Save(); err != nil {
		log.WithError(err).Error("could not save the ledger")
	}
}

// Save writes the current state to the storage. Its result is also
// available from Err.
func (b *Book) Save() error {
	b.err = b.storage.Save(b.State())
	return b.err
}

// Err returns the error of the last save, if any.
func (b *Book) Err() error { return b.err }
