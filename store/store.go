// Package store keeps a named library of machine sets in a SQLite
// database, so authored machines can be saved, listed and loaded by name
// instead of juggling document files.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tliron/commonlog"

	"github.com/chazu/mdt/document"

	_ "modernc.org/sqlite"
)

var log = commonlog.GetLogger("mdt.store")

// ErrNotFound indicates the requested machine doesn't exist.
var ErrNotFound = errors.New("store: machine not found")

// Store is a SQLite-backed machine library.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Entry is one row of a library listing.
type Entry struct {
	Name    string
	Tapes   int
	SavedAt time.Time
}

// Open opens (creating if needed) the library database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}

	// Serialize writers instead of failing on a locked database.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: setting busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS machines (
		name     TEXT PRIMARY KEY,
		tapes    INTEGER NOT NULL,
		machine  JSON NOT NULL,
		alphabet JSON NOT NULL,
		tape     JSON NOT NULL,
		saved_at TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: creating table: %w", err)
	}

	log.Debugf("opened machine library at %s", path)
	return &Store{db: db, dbPath: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores a machine set under the given name, replacing any previous
// set with that name.
func (s *Store) Save(name string, set *document.Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	machineDoc, err := document.EncodeMachine(set.Machine)
	if err != nil {
		return err
	}
	machineJSON, err := json.Marshal(machineDoc)
	if err != nil {
		return fmt.Errorf("store: encoding machine: %w", err)
	}
	alphabetJSON, err := json.Marshal(document.EncodeAlphabet(set.Alphabet))
	if err != nil {
		return fmt.Errorf("store: encoding alphabet: %w", err)
	}
	tapeJSON, err := json.Marshal(document.EncodeTape(set.Tape))
	if err != nil {
		return fmt.Errorf("store: encoding tape: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO machines (name, tapes, machine, alphabet, tape, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, set.Machine.Tapes(), machineJSON, alphabetJSON, tapeJSON,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store: saving %q: %w", name, err)
	}
	log.Infof("saved machine %q (%d tapes)", name, set.Machine.Tapes())
	return nil
}

// Load retrieves the machine set saved under name. The stored machine's
// tape count must match the requested arity.
func (s *Store) Load(name string, tapes int) (*document.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var machineJSON, alphabetJSON, tapeJSON []byte
	err := s.db.QueryRow(
		`SELECT machine, alphabet, tape FROM machines WHERE name = ?`, name,
	).Scan(&machineJSON, &alphabetJSON, &tapeJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("store: loading %q: %w", name, err)
	}

	if err := document.ValidateMachineDocument(machineJSON); err != nil {
		return nil, err
	}
	var machineDoc document.Machine
	if err := json.Unmarshal(machineJSON, &machineDoc); err != nil {
		return nil, fmt.Errorf("store: parsing machine %q: %w", name, err)
	}
	m, err := document.DecodeMachine(machineDoc, tapes)
	if err != nil {
		return nil, err
	}

	var alphabetDoc document.Alphabet
	if err := json.Unmarshal(alphabetJSON, &alphabetDoc); err != nil {
		return nil, fmt.Errorf("store: parsing alphabet %q: %w", name, err)
	}
	var tapeDoc document.Tape
	if err := json.Unmarshal(tapeJSON, &tapeDoc); err != nil {
		return nil, fmt.Errorf("store: parsing tape %q: %w", name, err)
	}

	return &document.Set{
		Machine:  m,
		Alphabet: document.DecodeAlphabet(alphabetDoc),
		Tape:     document.DecodeTape(tapeDoc),
	}, nil
}

// List returns every saved machine, ordered by name.
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT name, tapes, saved_at FROM machines ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store: listing: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var savedAt string
		if err := rows.Scan(&e.Name, &e.Tapes, &savedAt); err != nil {
			return nil, fmt.Errorf("store: listing: %w", err)
		}
		e.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: listing: %w", err)
	}
	return entries, nil
}

// Delete removes the machine saved under name. Deleting a name that
// doesn't exist reports ErrNotFound.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM machines WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("store: deleting %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: deleting %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	log.Infof("deleted machine %q", name)
	return nil
}
