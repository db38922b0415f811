package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/betlog"
	"github.com/etnz/betlog/date"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS bets (
	position     INTEGER PRIMARY KEY,
	id           TEXT NOT NULL UNIQUE,
	date         TEXT NOT NULL,
	description  TEXT NOT NULL,
	amount       TEXT NOT NULL,
	odds         TEXT NOT NULL,
	status       TEXT NOT NULL,
	type         TEXT NOT NULL,
	possible_win TEXT NOT NULL,
	events       TEXT
);`

// SQLite stores a ledger in a SQLite database. Decimals are stored as text
// to keep them exact, and the bets position column keeps insertion order.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens, or creates, the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("could not create directory for database %q: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not create schema in %q: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Load() (betlog.State, error) {
	var balance decimal.Decimal
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'balance'`).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return betlog.State{}, betlog.ErrNoState
	}
	if err != nil {
		return betlog.State{}, fmt.Errorf("could not read balance: %w", err)
	}

	rows, err := s.db.Query(`SELECT id, date, description, amount, odds, status, type, possible_win, events FROM bets ORDER BY position`)
	if err != nil {
		return betlog.State{}, fmt.Errorf("could not read bets: %w", err)
	}
	defer rows.Close()

	state := betlog.State{Balance: balance}
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return betlog.State{}, err
		}
		state.Bets = append(state.Bets, b)
	}
	if err := rows.Err(); err != nil {
		return betlog.State{}, fmt.Errorf("could not read bets: %w", err)
	}
	return state, nil
}

func scanBet(rows *sql.Rows) (betlog.Bet, error) {
	var (
		b                betlog.Bet
		on, status, kind string
		events           sql.NullString
	)
	if err := rows.Scan(&b.ID, &on, &b.Description, &b.Amount, &b.Odds, &status, &kind, &b.PossibleWin, &events); err != nil {
		return betlog.Bet{}, fmt.Errorf("could not scan bet: %w", err)
	}
	var err error
	if b.Date, err = date.Parse(on); err != nil {
		return betlog.Bet{}, fmt.Errorf("bet %q: %w", b.ID, err)
	}
	if b.Status, err = betlog.ParseStatus(status); err != nil {
		return betlog.Bet{}, fmt.Errorf("bet %q: %w", b.ID, err)
	}
	if b.Kind, err = betlog.ParseKind(kind); err != nil {
		return betlog.Bet{}, fmt.Errorf("bet %q: %w", b.ID, err)
	}
	if events.Valid && events.String != "" {
		if err := json.Unmarshal([]byte(events.String), &b.Events); err != nil {
			return betlog.Bet{}, fmt.Errorf("bet %q: invalid events: %w", b.ID, err)
		}
	}
	return b, nil
}

// Save replaces the database content in a single transaction.
func (s *SQLite) Save(state betlog.State) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM bets`); err != nil {
		return fmt.Errorf("could not clear bets: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO bets (position, id, date, description, amount, odds, status, type, possible_win, events) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("could not prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, b := range state.Bets {
		var events sql.NullString
		if len(b.Events) > 0 {
			data, err := json.Marshal(b.Events)
			if err != nil {
				return fmt.Errorf("bet %q: could not encode events: %w", b.ID, err)
			}
			events = sql.NullString{String: string(data), Valid: true}
		}
		if _, err = stmt.Exec(i, b.ID, b.Date.String(), b.Description, b.Amount, b.Odds, string(b.Status), string(b.Kind), b.PossibleWin, events); err != nil {
			return fmt.Errorf("could not insert bet %q: %w", b.ID, err)
		}
	}
	if _, err = tx.Exec(`INSERT INTO meta (key, value) VALUES ('balance', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, state.Balance); err != nil {
		return fmt.Errorf("could not write balance: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }
