// Package snapshot persists a complete machine set (machine, alphabet and
// tapes) as a single self-contained binary file, the compact alternative
// to the three-file JSON convention in package document.
//
// The file is a four byte magic followed by a canonically encoded CBOR
// body, so two snapshots of the same set are byte-identical.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/mdt/machine"
)

// Magic identifies a machine snapshot file.
var Magic = [4]byte{'M', 'D', 'T', 'S'}

// FormatVersion is the current snapshot body layout version.
const FormatVersion uint32 = 1

// Snapshot errors.
var (
	ErrBadMagic   = errors.New("snapshot: not a machine snapshot file")
	ErrBadVersion = errors.New("snapshot: unsupported format version")
)

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("snapshot: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// ---------------------------------------------------------------------------
// Snapshot body
// ---------------------------------------------------------------------------

// Snapshot is the serializable form of a machine set. The machine travels
// as its binary representation, so the snapshot format inherits the codec's
// table semantics instead of duplicating them.
type Snapshot struct {
	Version  uint32          `cbor:"version"`
	Tapes    int             `cbor:"tapes"`
	Machine  string          `cbor:"machine"`
	Alphabet []AlphabetEntry `cbor:"alphabet"`
	Contents []TapeState     `cbor:"contents"`
}

// AlphabetEntry is one rune of the alphabet, in index order.
type AlphabetEntry struct {
	Index int    `cbor:"index"`
	Char  string `cbor:"char"`
}

// TapeState is the content and head position of one tape.
type TapeState struct {
	Content []int `cbor:"content"`
	Head    int   `cbor:"head"`
}

// Capture builds a snapshot of the given machine, alphabet and tapes.
// The tape slice length must match the machine's tape count.
func Capture(m *machine.TuringMachine, a *machine.Alphabet, tapes []*machine.Tape) (*Snapshot, error) {
	if len(tapes) != m.Tapes() {
		return nil, fmt.Errorf("%w: %d tapes for a %d-tape machine",
			machine.ErrTapeArity, len(tapes), m.Tapes())
	}

	s := &Snapshot{
		Version:  FormatVersion,
		Tapes:    m.Tapes(),
		Machine:  m.BinaryRepresentation(),
		Alphabet: make([]AlphabetEntry, 0, a.SymbolCount()),
		Contents: make([]TapeState, 0, len(tapes)),
	}
	for i := 0; i < a.SymbolCount(); i++ {
		r, _ := a.Rune(machine.Symbol(i))
		s.Alphabet = append(s.Alphabet, AlphabetEntry{Index: i, Char: string(r)})
	}
	for _, t := range tapes {
		content := t.Content()
		cells := make([]int, len(content))
		for i, sym := range content {
			cells[i] = int(sym)
		}
		s.Contents = append(s.Contents, TapeState{Content: cells, Head: t.HeadPosition()})
	}
	return s, nil
}

// Restore rebuilds the machine, alphabet and tapes held by the snapshot.
func (s *Snapshot) Restore() (*machine.TuringMachine, *machine.Alphabet, []*machine.Tape, error) {
	if s.Version != FormatVersion {
		return nil, nil, nil, fmt.Errorf("%w: %d", ErrBadVersion, s.Version)
	}

	m, err := machine.DecodeBinary(s.Tapes, s.Machine)
	if err != nil {
		return nil, nil, nil, err
	}

	a := machine.NewAlphabet()
	for _, e := range s.Alphabet {
		for _, r := range e.Char {
			a.Add(r)
			break
		}
	}

	tapes := make([]*machine.Tape, 0, len(s.Contents))
	for _, ts := range s.Contents {
		content := make([]machine.Symbol, len(ts.Content))
		for i, c := range ts.Content {
			content[i] = machine.Symbol(c)
		}
		t := machine.NewTapeFromContent(content)
		for i := 0; i < ts.Head; i++ {
			t.MoveRight()
		}
		tapes = append(tapes, t)
	}
	return m, a, tapes, nil
}

// ---------------------------------------------------------------------------
// Wire format
// ---------------------------------------------------------------------------

// Marshal serializes a snapshot to its file bytes: magic plus CBOR body.
func Marshal(s *Snapshot) ([]byte, error) {
	body, err := encMode.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	var buf bytes.Buffer
	buf.Write(Magic[:])
	buf.Write(body)
	return buf.Bytes(), nil
}

// Unmarshal parses snapshot file bytes, checking magic and version.
func Unmarshal(data []byte) (*Snapshot, error) {
	if len(data) < len(Magic) || !bytes.Equal(data[:len(Magic)], Magic[:]) {
		return nil, ErrBadMagic
	}
	var s Snapshot
	if err := cbor.Unmarshal(data[len(Magic):], &s); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if s.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, s.Version)
	}
	return &s, nil
}

// WriteFile writes an already built snapshot to path.
func WriteFile(path string, s *Snapshot) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads and parses a snapshot file.
func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	return Unmarshal(data)
}
