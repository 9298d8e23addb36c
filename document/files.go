package document

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/chazu/mdt/machine"
)

// ---------------------------------------------------------------------------
// On-disk machine sets
// ---------------------------------------------------------------------------

// Set is a complete saved machine: the machine itself, the alphabet used to
// translate its symbols and the input tape.
type Set struct {
	Machine  *machine.TuringMachine
	Alphabet *machine.Alphabet
	Tape     *machine.Tape
}

// alphPath and tapePath derive the sibling file names from the base machine
// document path by replacing the ".json" suffix.
func alphPath(path string) string {
	return strings.Replace(path, ".json", "_alph.json", 1)
}

func tapePath(path string) string {
	return strings.Replace(path, ".json", "_tpe.json", 1)
}

// SaveSet writes a machine set as three sibling files: the machine document
// at path, the alphabet document at <path minus .json>_alph.json and the
// tape document at <path minus .json>_tpe.json.
func SaveSet(path string, set *Set) error {
	doc, err := EncodeMachine(set.Machine)
	if err != nil {
		return err
	}
	if err := writeJSON(path, doc); err != nil {
		return err
	}
	if err := writeJSON(alphPath(path), EncodeAlphabet(set.Alphabet)); err != nil {
		return err
	}
	return writeJSON(tapePath(path), EncodeTape(set.Tape))
}

// LoadSet reads a machine set saved by SaveSet. The machine document is
// schema-validated before decoding, and its declared tape count must match
// the requested arity; on any failure nothing is returned.
func LoadSet(path string, tapes int) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	if err := ValidateMachineDocument(data); err != nil {
		return nil, err
	}
	var doc Machine
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("document: parse %s: %w", path, err)
	}
	m, err := DecodeMachine(doc, tapes)
	if err != nil {
		return nil, err
	}

	var alphDoc Alphabet
	if err := readJSON(alphPath(path), &alphDoc); err != nil {
		return nil, err
	}
	var tapeDoc Tape
	if err := readJSON(tapePath(path), &tapeDoc); err != nil {
		return nil, err
	}

	return &Set{
		Machine:  m,
		Alphabet: DecodeAlphabet(alphDoc),
		Tape:     DecodeTape(tapeDoc),
	}, nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("document: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("document: write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("document: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("document: parse %s: %w", path, err)
	}
	return nil
}
