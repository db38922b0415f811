// Package store persists betlog ledgers. Every backend implements
// betlog.Storage: the JSONL file is the default and human readable one,
// SQLite and Badger keep the ledger in a local database, and Memory is used
// for testing.
package store

import (
	"fmt"

	"github.com/etnz/betlog"
	"github.com/etnz/betlog/config"
)

// Store is a betlog.Storage holding resources that must be released.
type Store interface {
	betlog.Storage
	Close() error
}

// Open opens the backend selected in cfg.
func Open(cfg config.Store) (Store, error) {
	switch cfg.Backend {
	case "file", "":
		return NewFile(cfg.Path), nil
	case "sqlite":
		return OpenSQLite(cfg.Path)
	case "badger":
		return OpenBadger(cfg.Path)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
